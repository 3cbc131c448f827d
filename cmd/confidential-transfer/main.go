package main

import (
	"flag"
	"os"

	"git.gammaspectra.live/P2Pool/confidential/account"
	"git.gammaspectra.live/P2Pool/confidential/crypto"
	"git.gammaspectra.live/P2Pool/confidential/transaction"
	"git.gammaspectra.live/P2Pool/confidential/utils"
)

func main() {
	balance := flag.Uint64("balance", 100, "balance minted to the sender")
	amount := flag.Uint64("amount", 10, "amount transferred to the receiver")
	printJson := flag.Bool("json", false, "print the signed transfer as JSON")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *debug {
		utils.GlobalLogLevel |= utils.LogLevelDebug
	}

	cfg := transaction.DefaultConfig()
	rng := crypto.RandomReader

	alice, err := account.NewAccount(rng)
	if err != nil {
		utils.Fatalf("could not create account: %s", err)
	}
	bob, err := account.NewAccount(rng)
	if err != nil {
		utils.Fatalf("could not create account: %s", err)
	}
	utils.Logf("Accounts", "sender %s", alice.Address())
	utils.Logf("Accounts", "receiver %s", bob.Address())

	input, err := transaction.Mint(cfg, alice, *balance, rng)
	if err != nil {
		utils.Fatalf("could not mint input: %s", err)
	}
	utils.Logf("Mint", "minted %d to one-time account %s", *balance, input.OneTimeAccount.PublicKey.String())

	tx, err := input.Transfer(cfg, alice, bob, *amount, rng)
	if err != nil {
		utils.Fatalf("transfer failed: %s", err)
	}
	utils.Logf("Transfer", "sent %d, change output %s, payment output %s", *amount, tx.Outputs[0].OneTimeAccount.PublicKey.String(), tx.Outputs[1].OneTimeAccount.PublicKey.String())

	ok, err := tx.Verify(cfg)
	if err != nil {
		utils.Fatalf("verification failed: %s", err)
	}
	if !ok {
		utils.Errorf("Verify", "transfer rejected")
		os.Exit(1)
	}
	utils.Logf("Verify", "signature, nonnegative proofs and sum proof verified")

	_, secret, err := tx.Outputs[1].Open(bob)
	if err != nil {
		utils.Fatalf("receiver could not open payment: %s", err)
	}
	utils.Logf("Receive", "receiver decrypted balance %d", secret.Balance)

	if *printJson {
		buf, err := utils.MarshalJSONIndent(tx, "  ")
		if err != nil {
			utils.Fatalf("could not encode transfer: %s", err)
		}
		_, _ = os.Stdout.Write(append(buf, '\n'))
	}
}
