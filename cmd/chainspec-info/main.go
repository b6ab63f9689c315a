// Command chainspec-info inspects the hardfork schedule and EIP-2124 fork
// identifier of a well-known chain specification, or of a genesis.json
// file supplied on disk, in either its geth-style or native form.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/chainkit/chainspec/chain"
	"github.com/chainkit/chainspec/forkid"
	applog "github.com/chainkit/chainspec/log"
)

var logger = applog.Default().Module("chainspec-info")

func main() {
	app := &cli.App{
		Name:  "chainspec-info",
		Usage: "inspect Ethereum chain specifications and EIP-2124 fork identifiers",
		Commands: []*cli.Command{
			showCommand,
			forkIDCommand,
			genesisCommand,
			loadCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		logger.Error("command failed", "error", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

var networkFlag = &cli.StringFlag{
	Name:  "network",
	Value: "mainnet",
	Usage: "well-known network: mainnet, sepolia, holesky, dev, op-mainnet",
}

func resolveSpec(name string) (*chain.Spec, error) {
	switch name {
	case "mainnet":
		return chain.Mainnet(), nil
	case "sepolia":
		return chain.Sepolia(), nil
	case "holesky":
		return chain.Holesky(), nil
	case "dev":
		return chain.Dev(), nil
	case "op-mainnet":
		return chain.OPMainnet(), nil
	default:
		return nil, fmt.Errorf("unknown network %q", name)
	}
}

var showCommand = &cli.Command{
	Name:  "show",
	Usage: "print the hardfork schedule of a well-known network",
	Flags: []cli.Flag{networkFlag},
	Action: func(c *cli.Context) error {
		spec, err := resolveSpec(c.String("network"))
		if err != nil {
			return err
		}
		fmt.Print(chain.NewDisplayHardforks(spec).String())
		return nil
	},
}

var forkIDCommand = &cli.Command{
	Name:  "forkid",
	Usage: "compute the EIP-2124 fork ID at a given block and timestamp",
	Flags: []cli.Flag{
		networkFlag,
		&cli.Uint64Flag{Name: "block", Usage: "head block number"},
		&cli.Uint64Flag{Name: "time", Usage: "head timestamp (unix seconds)"},
	},
	Action: func(c *cli.Context) error {
		spec, err := resolveSpec(c.String("network"))
		if err != nil {
			return err
		}
		head := chain.Head{Number: c.Uint64("block"), Timestamp: c.Uint64("time")}
		id := forkid.New(spec, head)
		logger.Info("computed fork id", "network", c.String("network"), "block", head.Number, "time", head.Timestamp)
		fmt.Printf("%s\n", id)
		return nil
	},
}

var genesisCommand = &cli.Command{
	Name:  "genesis",
	Usage: "print the derived genesis header of a well-known network",
	Flags: []cli.Flag{networkFlag},
	Action: func(c *cli.Context) error {
		spec, err := resolveSpec(c.String("network"))
		if err != nil {
			return err
		}
		h := spec.GenesisHeader()
		fmt.Printf("number:    %d\n", h.Number)
		fmt.Printf("timestamp: %d\n", h.Timestamp)
		fmt.Printf("gasLimit:  %d\n", h.GasLimit)
		if h.BaseFeePerGas != nil {
			fmt.Printf("baseFee:   %d\n", *h.BaseFeePerGas)
		}
		if h.WithdrawalsRoot != nil {
			fmt.Printf("withdrawalsRoot: %x\n", *h.WithdrawalsRoot)
		}
		if h.ParentBeaconRoot != nil {
			fmt.Printf("parentBeaconRoot: %x\n", *h.ParentBeaconRoot)
		}
		return nil
	},
}

var loadCommand = &cli.Command{
	Name:      "load",
	Usage:     "load a genesis.json (geth-style or native) and print its hardfork schedule",
	ArgsUsage: "<path>",
	Action: func(c *cli.Context) error {
		path := c.Args().First()
		if path == "" {
			return fmt.Errorf("usage: chainspec-info load <path>")
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		var spec *chain.Spec
		switch {
		case chain.IsForeignDocument(raw):
			var doc chain.Document
			if err := json.Unmarshal(raw, &doc); err != nil {
				return fmt.Errorf("parsing %s: %w", path, err)
			}
			spec, err = chain.SpecFromDocument(&doc)
		case chain.IsNativeDocument(raw):
			var doc chain.NativeDocument
			if err := json.Unmarshal(raw, &doc); err != nil {
				return fmt.Errorf("parsing %s: %w", path, err)
			}
			spec, err = chain.SpecFromNativeDocument(&doc)
		default:
			return fmt.Errorf("%s is neither a geth-style nor a native genesis document", path)
		}
		if err != nil {
			return err
		}

		logger.Info("loaded genesis document", "path", path, "chainId", spec.ChainID())
		fmt.Print(chain.NewDisplayHardforks(spec).String())
		return nil
	},
}
