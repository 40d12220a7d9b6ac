package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/txsplit7000-backend/internal/breaker"
	"github.com/goodnatureofminers/txsplit7000-backend/internal/rawtx"
	"github.com/goodnatureofminers/txsplit7000-backend/internal/render"
)

type config struct {
	Fields          []string `long:"field" short:"f" description:"header field to corrupt (version, prevblock, merkleroot, timestamp, bits, nonce, all); repeatable, default all"`
	Version         *int32   `long:"version" description:"explicit version value to write"`
	TimestampOffset *int64   `long:"timestamp-offset" description:"shift the timestamp by this many seconds instead of jumping a year ahead"`
	ZeroHashes      bool     `long:"zero-hashes" description:"zero hash fields instead of randomizing them"`
	Args            struct {
		Hex string `positional-arg-name:"hex" description:"80-byte header as hex; read from stdin when omitted"`
	} `positional-args:"yes"`
}

var knownFields = map[string]breaker.Field{
	"version":    breaker.FieldVersion,
	"prevblock":  breaker.FieldPrevBlock,
	"merkleroot": breaker.FieldMerkleRoot,
	"timestamp":  breaker.FieldTimestamp,
	"bits":       breaker.FieldBits,
	"nonce":      breaker.FieldNonce,
	"all":        breaker.FieldAll,
}

func main() {
	cfg := config{}

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.Parse(&cfg); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	fields, err := parseFields(cfg.Fields)
	if err != nil {
		logger.Fatal("invalid field", zap.Error(err))
	}

	hexStr, err := readInput(cfg.Args.Hex)
	if err != nil {
		logger.Fatal("failed to read input", zap.Error(err))
	}

	header, err := rawtx.DecodeHeaderHex(hexStr)
	if err != nil {
		logger.Fatal("decode header failed", zap.Error(err))
	}

	proc := breaker.New(breaker.Config{
		Fields:          fields,
		VersionOverride: cfg.Version,
		TimestampOffset: cfg.TimestampOffset,
		ZeroHashes:      cfg.ZeroHashes,
	})
	corrupted, changes := proc.Break(*header)

	fmt.Print(render.HeaderText("ORIGINAL", header))
	fmt.Println()
	fmt.Print(render.HeaderText("CORRUPTED", &corrupted))
	fmt.Println()

	fmt.Println("CHANGES:")
	for _, c := range changes {
		fmt.Printf("  %s: %s -> %s\n", c.Field, c.Before, c.After)
	}
	fmt.Println()
	fmt.Printf("Corrupted hex: %s\n", hex.EncodeToString(corrupted.Serialize()))
}

func parseFields(names []string) ([]breaker.Field, error) {
	fields := make([]breaker.Field, 0, len(names))
	for _, name := range names {
		f, ok := knownFields[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown header field %q", name)
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func readInput(arg string) (string, error) {
	if arg != "" {
		return strings.TrimSpace(arg), nil
	}
	buf, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	s := strings.TrimSpace(string(buf))
	if s == "" {
		return "", errors.New("no hex input given")
	}
	return s, nil
}
