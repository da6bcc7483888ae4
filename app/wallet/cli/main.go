package main

import "github.com/vitalchain/ledger/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
