//go:build !tinygo

package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"

	"tftkeypad/internal/config"
	"tftkeypad/passcode"
)

type options struct {
	code   string
	iter   int
	salt   string
	scheme string
	toml   bool
}

func main() {
	var opts options
	flag.StringVar(&opts.code, "code", "", "Passcode digits (1-10).")
	flag.IntVar(&opts.iter, "iter", passcode.DefaultIter, "Hash iterations.")
	flag.StringVar(&opts.salt, "salt", "", "Salt as 32 hex chars (default: random).")
	flag.StringVar(&opts.scheme, "scheme", passcode.SchemePBKDF2SHA256.String(), "Hash scheme: pbkdf2-sha256 or sha256-iter.")
	flag.BoolVar(&opts.toml, "toml", false, "Print a keypad.toml [lock] section instead of the bare record.")
	flag.Parse()

	if opts.code == "" {
		fmt.Fprintln(os.Stderr, "error: -code is required")
		os.Exit(2)
	}

	if err := run(os.Stdout, opts); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(w io.Writer, opts options) error {
	scheme, ok := passcode.ParseScheme(opts.scheme)
	if !ok {
		return fmt.Errorf("unknown scheme %q", opts.scheme)
	}
	salt, err := parseSalt(opts.salt)
	if err != nil {
		return err
	}
	rec, err := passcode.NewWithScheme(scheme, []byte(opts.code), opts.iter, salt)
	if err != nil {
		return fmt.Errorf("code: %w", err)
	}

	if !opts.toml {
		_, err := fmt.Fprintln(w, rec.String())
		return err
	}
	f := config.Default()
	f.Lock.Passcode = rec.String()
	b, err := config.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err = w.Write(b)
	return err
}

func parseSalt(s string) ([16]byte, error) {
	var out [16]byte
	if s == "" {
		if _, err := rand.Read(out[:]); err != nil {
			return out, fmt.Errorf("random salt: %w", err)
		}
		return out, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("salt: %w", err)
	}
	if len(b) != len(out) {
		return out, fmt.Errorf("salt: want %d bytes, got %d", len(out), len(b))
	}
	copy(out[:], b)
	return out, nil
}
