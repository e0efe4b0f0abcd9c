// Package cli implements the gciphers command line.
package cli

import (
	"crypto/rand"
	"io"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/f3rmion/gciphers/gost"
	"github.com/f3rmion/gciphers/keygen"
	"github.com/f3rmion/gciphers/session"
)

// EnvPrefix is the prefix of environment variables read by the CLI, for
// example GCIPHERS_LOG_LEVEL for log.level.
const EnvPrefix = "GCIPHERS"

// Configuration keys.
const (
	keyLogLevel     = "log.level"
	keyRetryBudget  = "retry_budget"
	keyHash         = "hash.algorithm"
	keyHashModulus  = "hash.modulus"
	keyRandomMinMod = "random.min_modulus"
	keyRandomMaxMod = "random.max_modulus"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	v      *viper.Viper
	out    io.Writer
	errOut io.Writer
	rng    io.Reader
	logger *zap.Logger
}

// NewRootCmd builds the command tree. Output goes to out, logs to errOut.
// A nil rng selects crypto/rand.Reader.
func NewRootCmd(out, errOut io.Writer, rng io.Reader) *cobra.Command {
	if rng == nil {
		rng = rand.Reader
	}
	a := &app{
		v:      viper.New(),
		out:    out,
		errOut: errOut,
		rng:    rng,
		logger: zap.NewNop(),
	}
	a.v.SetEnvPrefix(EnvPrefix)
	a.v.AutomaticEnv()
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.SetDefault(keyLogLevel, "warn")
	a.v.SetDefault(keyHash, "square")
	a.v.SetDefault(keyRandomMinMod, keygen.DefaultMinModulus)
	a.v.SetDefault(keyRandomMaxMod, keygen.DefaultMaxModulus)

	var configFile string
	root := &cobra.Command{
		Use:           "gciphers",
		Short:         "Elliptic-curve cipher and signature toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				a.v.SetConfigFile(configFile)
				if err := a.v.ReadInConfig(); err != nil {
					return errors.Wrapf(err, "failed to read config file %s", configFile)
				}
			}
			logger, err := newLogger(a.v.GetString(keyLogLevel), a.errOut)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "YAML config file")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.Int("retry-budget", 0, "attempt limit of sampling loops (0 selects the default)")
	flags.String("hash", "", "signature hash: square, sha256 or blake2b")
	flags.String("hash-modulus", "", "modulus of the signature hash (default: subgroup order)")
	a.v.BindPFlag(keyLogLevel, flags.Lookup("log-level"))
	a.v.BindPFlag(keyRetryBudget, flags.Lookup("retry-budget"))
	a.v.BindPFlag(keyHash, flags.Lookup("hash"))
	a.v.BindPFlag(keyHashModulus, flags.Lookup("hash-modulus"))

	root.AddCommand(
		a.keygenCmd(),
		a.encryptCmd(),
		a.decryptCmd(),
		a.signCmd(),
		a.verifyCmd(),
		a.sharedCmd(),
		a.curvesCmd(),
	)
	return root
}

// newSession builds a session from the configuration.
func (a *app) newSession() (*session.Session, error) {
	opts := []session.Option{
		session.WithLogger(a.logger),
		session.WithRetryBudget(a.v.GetInt(keyRetryBudget)),
	}

	name := strings.ToLower(a.v.GetString(keyHash))
	hasher, ok := gost.HasherByName(name)
	if !ok {
		return nil, errors.Errorf("unknown hash algorithm %q", name)
	}
	opts = append(opts, session.WithHasher(hasher))

	if m := a.v.GetString(keyHashModulus); m != "" {
		v, ok := new(big.Int).SetString(m, 10)
		if !ok || v.Cmp(big.NewInt(2)) < 0 {
			return nil, errors.Errorf("invalid hash modulus %q", m)
		}
		opts = append(opts, session.WithHashModulus(v))
	}
	return session.New(a.rng, opts...), nil
}

// loadSession builds a session and imports the key file at path.
func (a *app) loadSession(path string) (*session.Session, error) {
	if path == "" {
		return nil, errors.New("must supply a key file with --key")
	}
	s, err := a.newSession()
	if err != nil {
		return nil, err
	}
	if err := s.ImportFromFile(path); err != nil {
		return nil, errors.Wrapf(err, "failed to load keys from %s", path)
	}
	return s, nil
}

// textArg returns the single positional argument or the joined arguments.
func textArg(args []string) string {
	return strings.Join(args, " ")
}
