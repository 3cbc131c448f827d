package main

import (
	"encoding/binary"
	"flag"
	"io"
	"os"
	"strconv"
	"strings"

	"git.gammaspectra.live/P2Pool/confidential/account"
	"git.gammaspectra.live/P2Pool/confidential/crypto"
	"git.gammaspectra.live/P2Pool/confidential/ledger"
	"git.gammaspectra.live/P2Pool/confidential/transaction"
	"git.gammaspectra.live/P2Pool/confidential/utils"
)

func parseAmounts(s string) ([]uint64, error) {
	var amounts []uint64
	for _, v := range strings.Split(s, ",") {
		amount, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, err
		}
		amounts = append(amounts, amount)
	}
	return amounts, nil
}

func randomAmount(r io.Reader) uint64 {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		utils.Panicf("random source failed: %s", err)
	}
	return binary.LittleEndian.Uint64(buf[:]) % 1000
}

func main() {
	ringSize := flag.Int("ring", 4, "ring size, the real inputs plus decoy sets")
	inputAmounts := flag.String("inputs", "60,40", "comma separated balances of the real inputs")
	outputAmounts := flag.String("outputs", "70,30", "comma separated amounts sent to fresh recipients")
	printJson := flag.Bool("json", false, "print the ring signature as JSON")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	utils.GlobalLogLevel |= utils.LogLevelNotice
	if *debug {
		utils.GlobalLogLevel |= utils.LogLevelDebug
	}

	inputs, err := parseAmounts(*inputAmounts)
	if err != nil {
		utils.Fatalf("invalid -inputs: %s", err)
	}
	outputs, err := parseAmounts(*outputAmounts)
	if err != nil {
		utils.Fatalf("invalid -outputs: %s", err)
	}
	if *ringSize < 2 {
		utils.Fatalf("-ring must be at least 2")
	}

	cfg := transaction.DefaultConfig()
	rng := crypto.RandomReader

	owner, err := account.NewAccount(rng)
	if err != nil {
		utils.Fatalf("could not create account: %s", err)
	}

	ring := &transaction.RingCT{
		Owner: owner,
	}
	for _, balance := range inputs {
		tx, err := transaction.Mint(cfg, owner, balance, rng)
		if err != nil {
			utils.Fatalf("could not mint input: %s", err)
		}
		ring.Inputs = append(ring.Inputs, *tx)
	}
	for _, amount := range outputs {
		recipient, err := account.NewAccount(rng)
		if err != nil {
			utils.Fatalf("could not create account: %s", err)
		}
		ring.Outputs = append(ring.Outputs, transaction.Recipient{Account: recipient, Amount: amount})
	}
	for range *ringSize - 1 {
		decoyOwner, err := account.NewAccount(rng)
		if err != nil {
			utils.Fatalf("could not create account: %s", err)
		}
		decoys := make([]transaction.ConfidentialTransaction, 0, len(inputs))
		for range inputs {
			tx, err := transaction.Mint(cfg, decoyOwner, randomAmount(rng), rng)
			if err != nil {
				utils.Fatalf("could not mint decoy: %s", err)
			}
			decoys = append(decoys, *tx)
		}
		ring.Decoys = append(ring.Decoys, decoys)
	}
	utils.Logf("RingCT", "spending %d inputs to %d outputs in a ring of %d", len(ring.Inputs), len(ring.Outputs), *ringSize)

	sig, err := ring.Transfer(cfg, rng)
	if err != nil {
		utils.Fatalf("transfer failed: %s", err)
	}

	ok, err := sig.Verify(cfg)
	if err != nil {
		utils.Fatalf("verification failed: %s", err)
	}
	if !ok {
		utils.Errorf("Verify", "ring signature rejected")
		os.Exit(1)
	}
	utils.Logf("Verify", "ring signature, nonnegative proofs and balance verified")

	spent := ledger.NewMemoryLedger()
	if err = ledger.CheckAndRecord(cfg, spent, sig); err != nil {
		utils.Fatalf("could not record key images: %s", err)
	}
	for _, image := range sig.KeyImages() {
		utils.Logf("Ledger", "recorded key image %s", image.String())
	}

	replay, err := ring.Transfer(cfg, rng)
	if err != nil {
		utils.Fatalf("replay transfer failed: %s", err)
	}
	if err = ledger.CheckAndRecord(cfg, spent, replay); err != nil {
		utils.Noticef("Ledger", "replayed spend rejected: %s", err)
	} else {
		utils.Errorf("Ledger", "replayed spend was accepted")
		os.Exit(1)
	}

	if *printJson {
		encoder := utils.NewJSONEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err = encoder.Encode(sig); err != nil {
			utils.Fatalf("could not encode ring signature: %s", err)
		}
	}
}
