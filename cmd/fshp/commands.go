package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/hasbyte1/go-fshp/fshp"
	"github.com/hasbyte1/go-fshp/hashing"
	"github.com/hasbyte1/go-fshp/internal/config"
	"github.com/hasbyte1/go-fshp/internal/logs"
)

type cmdEnv struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfg    *config.Config
	logger *slog.Logger
}

type command func(env *cmdEnv, args []string) (int, error)

var commands = map[string]command{
	"crypt":  runCrypt,
	"check":  runCheck,
	"info":   runInfo,
	"rehash": runRehash,
}

// paramFlags are the hash parameters that may override the config file.
type paramFlags struct {
	variant *int
	rounds  *int
	saltLen *int
}

func newFlagSet(env *cmdEnv, name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	configPath := fs.String("config", "", "YAML config file")
	return fs, configPath
}

func addParamFlags(fs *flag.FlagSet) paramFlags {
	return paramFlags{
		variant: fs.Int("variant", int(fshp.DefaultVariant), "FSHP variant: 0=SHA-1 1=SHA-256 2=SHA-384 3=SHA-512"),
		rounds:  fs.Int("rounds", fshp.DefaultRounds, "Number of hash iterations"),
		saltLen: fs.Int("saltlen", fshp.DefaultSaltLen, "Random salt length in bytes"),
	}
}

// setup loads the config, applies explicitly set parameter flags and builds
// the logger.  p may be nil for commands without parameter flags.
func (e *cmdEnv) setup(fs *flag.FlagSet, configPath string, p *paramFlags) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if p != nil {
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "variant":
				cfg.Hash.Variant = *p.variant
			case "rounds":
				cfg.Hash.Rounds = *p.rounds
			case "saltlen":
				cfg.Hash.SaltLen = *p.saltLen
			}
		})
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, err := logs.New(cfg.Log, e.stderr)
	if err != nil {
		return err
	}
	e.cfg, e.logger = cfg, logger
	return nil
}

func (e *cmdEnv) manager() (*hashing.Manager, error) {
	fH, err := hashing.NewFSHPHasher(e.cfg.Options())
	if err != nil {
		return nil, err
	}
	bcH, err := hashing.NewBcryptHasher(hashing.DefaultBcryptCost)
	if err != nil {
		return nil, err
	}
	m := hashing.NewManager(hashing.DriverFSHP)
	_ = m.RegisterDriver(hashing.DriverFSHP, fH)
	_ = m.RegisterDriver(hashing.DriverBcrypt, bcH)
	return m, nil
}

// parse handles -h and flag errors; the flag package has already printed
// the message by the time Parse returns.
func parse(fs *flag.FlagSet, args []string) (int, bool) {
	err := fs.Parse(args)
	switch {
	case err == nil:
		return 0, true
	case errors.Is(err, flag.ErrHelp):
		return exitOK, false
	default:
		return exitError, false
	}
}

func runCrypt(env *cmdEnv, args []string) (int, error) {
	fs, configPath := newFlagSet(env, "crypt")
	p := addParamFlags(fs)
	salt := fs.String("salt", "", "Explicit salt (reproducible output); overrides -saltlen")
	if code, ok := parse(fs, args); !ok {
		return code, nil
	}
	if err := env.setup(fs, *configPath, &p); err != nil {
		return exitError, err
	}

	h, err := fshp.NewHasher(env.cfg.Options())
	if err != nil {
		return exitError, err
	}
	password, err := readPassword(env)
	if err != nil {
		return exitError, err
	}

	saltSet := false
	fs.Visit(func(f *flag.Flag) { saltSet = saltSet || f.Name == "salt" })

	var hash string
	if saltSet {
		hash, err = h.MakeWithSalt(password, []byte(*salt))
	} else {
		hash, err = h.Make(password)
	}
	if err != nil {
		return exitError, errors.Wrap(err, "crypt")
	}

	opts := h.Options()
	env.logger.Debug("password hashed",
		slog.String("variant", opts.Variant.String()),
		slog.Int("rounds", opts.Rounds),
		slog.Bool("explicit_salt", saltSet))
	fmt.Fprintln(env.stdout, hash)
	return exitOK, nil
}

func runCheck(env *cmdEnv, args []string) (int, error) {
	fs, configPath := newFlagSet(env, "check")
	hashFlag := fs.String("hash", "", "Stored hash to verify against")
	if code, ok := parse(fs, args); !ok {
		return code, nil
	}
	if err := env.setup(fs, *configPath, nil); err != nil {
		return exitError, err
	}
	hash, err := hashArg(fs, *hashFlag)
	if err != nil {
		return exitError, err
	}

	m, err := env.manager()
	if err != nil {
		return exitError, err
	}
	password, err := readPassword(env)
	if err != nil {
		return exitError, err
	}

	ok, err := m.CheckWithDetect(password, hash)
	if err != nil {
		return exitError, errors.Wrap(err, "check")
	}
	if !ok {
		env.logger.Warn("password mismatch")
		fmt.Fprintln(env.stdout, "mismatch")
		return exitMismatch, nil
	}
	fmt.Fprintln(env.stdout, "match")
	return exitOK, nil
}

func runInfo(env *cmdEnv, args []string) (int, error) {
	fs, configPath := newFlagSet(env, "info")
	hashFlag := fs.String("hash", "", "Hash to inspect")
	if code, ok := parse(fs, args); !ok {
		return code, nil
	}
	if err := env.setup(fs, *configPath, nil); err != nil {
		return exitError, err
	}
	hash, err := hashArg(fs, *hashFlag)
	if err != nil {
		return exitError, err
	}

	m, err := env.manager()
	if err != nil {
		return exitError, err
	}
	info, err := m.InfoWithDetect(hash)
	if err != nil {
		return exitError, errors.Wrap(err, "info")
	}

	out := map[string]any{"driver": info.Driver}
	for k, v := range info.Params {
		out[k] = v
	}
	if err := json.NewEncoder(env.stdout).Encode(out); err != nil {
		return exitError, errors.Wrap(err, "encode info")
	}
	return exitOK, nil
}

func runRehash(env *cmdEnv, args []string) (int, error) {
	fs, configPath := newFlagSet(env, "rehash")
	p := addParamFlags(fs)
	hashFlag := fs.String("hash", "", "Stored hash to compare with the current parameters")
	if code, ok := parse(fs, args); !ok {
		return code, nil
	}
	if err := env.setup(fs, *configPath, &p); err != nil {
		return exitError, err
	}
	hash, err := hashArg(fs, *hashFlag)
	if err != nil {
		return exitError, err
	}

	m, err := env.manager()
	if err != nil {
		return exitError, err
	}
	needs, err := m.NeedsRehash(hash)
	if err != nil {
		return exitError, errors.Wrap(err, "rehash")
	}
	fmt.Fprintln(env.stdout, needs)
	return exitOK, nil
}

// hashArg takes the hash from -hash or the first positional argument.
func hashArg(fs *flag.FlagSet, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if fs.NArg() > 0 {
		return fs.Arg(0), nil
	}
	return "", errors.Errorf("%s: a hash is required (-hash or first argument)", fs.Name())
}

// readPassword prompts without echo on a terminal and otherwise reads the
// first line of stdin.
func readPassword(env *cmdEnv) (string, error) {
	if f, ok := env.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(env.stderr, "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(env.stderr)
		if err != nil {
			return "", errors.Wrap(err, "read password")
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(env.stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", errors.Wrap(err, "read password")
	}
	return strings.TrimRight(line, "\r\n"), nil
}
