package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
	"github.com/vitalchain/ledger/foundation/ledger/signature"
)

type balance struct {
	Account string `json:"account"`
	Balance int64  `json:"balance"`
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print your balance.",
	Run:   balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func balanceRun(cmd *cobra.Command, args []string) {
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	account := signature.Address(privateKey)
	fmt.Println("For Account:", account)

	resp, err := http.Get(fmt.Sprintf("%s/v1/balances/%s", url, account))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	var bal balance
	if err := json.NewDecoder(resp.Body).Decode(&bal); err != nil {
		log.Fatal(err)
	}

	fmt.Println(bal.Balance)
}
