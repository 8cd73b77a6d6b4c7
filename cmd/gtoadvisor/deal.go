package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fairdeck/gtoadvisor/internal/fairness"
)

// DealCmd walks one full commit-reveal cycle: it publishes the
// commitment, accepts the client seed, and prints the dealt order with
// the proof bundle anyone can verify later.
type DealCmd struct {
	ClientSeed string `arg:"" help:"Client seed contributed after the commitment"`
	JSON       bool   `help:"Print the proof bundle as JSON only"`
}

func (c *DealCmd) Run(cli *CLI) error {
	serverSeed, err := fairness.NewServerSeed()
	if err != nil {
		return err
	}

	deal := fairness.NewDeal()
	commitment, err := deal.Commit(serverSeed)
	if err != nil {
		return err
	}

	deck, proof, err := deal.Reveal(c.ClientSeed)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(proof)
	}

	fmt.Printf("deal        %s\n", deal.ID())
	fmt.Printf("commitment  %s\n", commitment.Digest)
	fmt.Printf("server seed %s\n", proof.ServerSeed)
	fmt.Printf("client seed %s\n", proof.ClientSeed)
	fmt.Printf("combined    %s\n", proof.CombinedDigest)
	fmt.Println("deck order:")
	order := deck.Order()
	for i := 0; i < len(order); i += 13 {
		for j := i; j < i+13 && j < len(order); j++ {
			fmt.Printf("%s ", order[j])
		}
		fmt.Println()
	}
	return nil
}

// VerifyCmd re-checks a proof bundle produced by deal --json. Exit
// status 1 means the proof does not hold.
type VerifyCmd struct {
	Proof string `arg:"" type:"existingfile" help:"Path to a proof bundle JSON file"`
}

func (c *VerifyCmd) Run(cli *CLI) error {
	data, err := os.ReadFile(c.Proof)
	if err != nil {
		return err
	}

	var proof fairness.ProofBundle
	if err := json.Unmarshal(data, &proof); err != nil {
		return fmt.Errorf("parse proof bundle: %w", err)
	}

	if !fairness.VerifyProof(proof) {
		return fmt.Errorf("proof does not verify: commitment, seeds, and deck order are inconsistent")
	}
	fmt.Println("proof verified")
	return nil
}
