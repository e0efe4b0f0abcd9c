package cli

import (
	"fmt"
	"math/big"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/f3rmion/gciphers/curves"
	"github.com/f3rmion/gciphers/group"
	"github.com/f3rmion/gciphers/keygen"
)

func (a *app) keygenCmd() *cobra.Command {
	var (
		coeffA, coeffB, modulus string
		curveName               string
		random                  bool
		out, publicOut          string
	)
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate key material.",
		Long: `Generate key material on a small curve given by --a, --b and --p, on a
random small curve (--random) or on a named curve (--curve). The full key set
is written to --out; --public-out additionally writes the public part.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return errors.New("must supply an output file with --out")
			}
			modes := 0
			for _, set := range []bool{curveName != "", random, modulus != ""} {
				if set {
					modes++
				}
			}
			if modes != 1 {
				return errors.New("must supply exactly one of --p, --random or --curve")
			}

			s, err := a.newSession()
			if err != nil {
				return err
			}
			var km *keygen.KeyMaterial
			switch {
			case curveName != "":
				d, err := curves.ByName(curveName)
				if err != nil {
					return err
				}
				km, err = s.UseDomain(d)
				if err != nil {
					return errors.Wrap(err, "key generation failed")
				}
			case random:
				km, err = s.GenerateRandom(a.v.GetInt64(keyRandomMinMod), a.v.GetInt64(keyRandomMaxMod))
				if err != nil {
					return errors.Wrap(err, "key generation failed")
				}
			default:
				curve, err := parseCurve(coeffA, coeffB, modulus)
				if err != nil {
					return err
				}
				km, err = s.Generate(curve)
				if err != nil {
					return errors.Wrap(err, "key generation failed")
				}
			}

			if err := s.ExportToFile(out, true); err != nil {
				return err
			}
			if publicOut != "" {
				if err := s.ExportToFile(publicOut, false); err != nil {
					return err
				}
			}
			fmt.Fprintf(a.out, "curve: %s\nG: %s\nq: %s\nh: %s\nx: %s\nY: %s\n",
				km.Curve, km.G, km.Q, km.H, km.X, km.Y)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&coeffA, "a", "0", "curve coefficient a")
	flags.StringVar(&coeffB, "b", "0", "curve coefficient b")
	flags.StringVar(&modulus, "p", "", "prime field modulus")
	flags.StringVar(&curveName, "curve", "", "named curve (see the curves command)")
	flags.BoolVar(&random, "random", false, "draw a random small curve")
	flags.Int64("min-modulus", keygen.DefaultMinModulus, "smallest modulus for --random")
	flags.Int64("max-modulus", keygen.DefaultMaxModulus, "bound above the largest modulus for --random")
	flags.StringVarP(&out, "out", "o", "", "file for the full key set")
	flags.StringVar(&publicOut, "public-out", "", "file for the public key")
	a.v.BindPFlag(keyRandomMinMod, flags.Lookup("min-modulus"))
	a.v.BindPFlag(keyRandomMaxMod, flags.Lookup("max-modulus"))
	return cmd
}

func parseCurve(a, b, p string) (*group.Curve, error) {
	var nums [3]*big.Int
	for i, s := range []string{a, b, p} {
		v, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, errors.Errorf("invalid curve parameter %q", s)
		}
		nums[i] = v
	}
	return group.New(nums[0], nums[1], nums[2])
}

func (a *app) encryptCmd() *cobra.Command {
	var keyFile string
	cmd := &cobra.Command{
		Use:   "encrypt <plaintext>",
		Short: "Encrypt alphabet text under a public key.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadSession(keyFile)
			if err != nil {
				return err
			}
			ct, err := s.Encrypt(textArg(args))
			if err != nil {
				return errors.Wrap(err, "encryption failed")
			}
			fmt.Fprintln(a.out, ct)
			return nil
		},
	}
	cmd.Flags().StringVarP(&keyFile, "key", "k", "", "key file (public or full)")
	return cmd
}

func (a *app) decryptCmd() *cobra.Command {
	var keyFile string
	cmd := &cobra.Command{
		Use:   "decrypt <ciphertext>",
		Short: "Decrypt ciphertext with a private key.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadSession(keyFile)
			if err != nil {
				return err
			}
			plain, err := s.Decrypt(textArg(args))
			if err != nil {
				return errors.Wrap(err, "decryption failed")
			}
			fmt.Fprintln(a.out, plain)
			return nil
		},
	}
	cmd.Flags().StringVarP(&keyFile, "key", "k", "", "full key file")
	return cmd
}

func (a *app) signCmd() *cobra.Command {
	var keyFile string
	cmd := &cobra.Command{
		Use:   "sign <message>",
		Short: "Sign a message and print r,s.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadSession(keyFile)
			if err != nil {
				return err
			}
			sig, err := s.Sign(textArg(args))
			if err != nil {
				return errors.Wrap(err, "signing failed")
			}
			fmt.Fprintln(a.out, sig)
			return nil
		},
	}
	cmd.Flags().StringVarP(&keyFile, "key", "k", "", "full key file")
	return cmd
}

func (a *app) verifyCmd() *cobra.Command {
	var keyFile, signature string
	cmd := &cobra.Command{
		Use:   "verify <message>",
		Short: "Verify a signature and print valid or invalid.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if signature == "" {
				return errors.New("must supply a signature with --signature")
			}
			s, err := a.loadSession(keyFile)
			if err != nil {
				return err
			}
			ok, err := s.Verify(textArg(args), signature)
			if err != nil {
				return errors.Wrap(err, "verification failed")
			}
			if ok {
				fmt.Fprintln(a.out, "valid")
			} else {
				fmt.Fprintln(a.out, "invalid")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&keyFile, "key", "k", "", "key file (public or full)")
	cmd.Flags().StringVarP(&signature, "signature", "s", "", `signature "r,s"`)
	return cmd
}

func (a *app) sharedCmd() *cobra.Command {
	var keyFile, peer string
	cmd := &cobra.Command{
		Use:   "shared",
		Short: "Print the Diffie-Hellman point with a peer's public point.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if peer == "" {
				return errors.New("must supply the peer point with --peer")
			}
			s, err := a.loadSession(keyFile)
			if err != nil {
				return err
			}
			p, err := s.SharedPoint(peer)
			if err != nil {
				return errors.Wrap(err, "key agreement failed")
			}
			fmt.Fprintln(a.out, p)
			return nil
		},
	}
	cmd.Flags().StringVarP(&keyFile, "key", "k", "", "full key file")
	cmd.Flags().StringVar(&peer, "peer", "", `peer public point "(x,y)"`)
	return cmd
}

func (a *app) curvesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "curves",
		Short: "List the named curves.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFIELD BITS\tORDER BITS\tCOFACTOR")
			for _, name := range curves.Names() {
				d, err := curves.ByName(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", name, d.Curve.P().BitLen(), d.Q.BitLen(), d.H)
			}
			return w.Flush()
		},
	}
}
