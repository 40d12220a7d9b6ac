package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/txsplit7000-backend/internal/rawtx"
	"github.com/goodnatureofminers/txsplit7000-backend/internal/render"
)

type config struct {
	JSON   bool `long:"json" short:"j" description:"emit a JSON document instead of text"`
	Header bool `long:"header" description:"decode an 80-byte block header instead of a transaction"`
	Args   struct {
		Hex string `positional-arg-name:"hex" description:"raw bytes as hex; read from stdin when omitted"`
	} `positional-args:"yes"`
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

	hexStr, err := readInput(cfg.Args.Hex)
	if err != nil {
		logger.Fatal("failed to read input", zap.Error(err))
	}

	out, err := decode(cfg, hexStr)
	if err != nil {
		logger.Fatal("decode failed", zap.Error(err))
	}
	fmt.Println(out)
}

func decode(cfg config, hexStr string) (string, error) {
	if cfg.Header {
		h, err := rawtx.DecodeHeaderHex(hexStr)
		if err != nil {
			return "", err
		}
		if cfg.JSON {
			return marshalIndent(render.NewHeaderDocument(h))
		}
		return render.HeaderText("BLOCK HEADER", h), nil
	}

	tx, err := rawtx.DecodeHex(hexStr)
	if err != nil {
		return "", err
	}
	if cfg.JSON {
		return marshalIndent(render.NewDocument(tx))
	}
	return render.Text(tx), nil
}

func marshalIndent(v any) (string, error) {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}
	return string(buf), nil
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
