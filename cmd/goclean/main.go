package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	goclean "github.com/reoring/goclean"
	"github.com/reoring/goclean/codec"
	"github.com/reoring/goclean/dsl"
	"github.com/reoring/goclean/internal/config"
	"github.com/reoring/goclean/internal/logger"
	"github.com/reoring/goclean/jsoncodec"
	"github.com/reoring/goclean/middleware"
	ginmw "github.com/reoring/goclean/middleware/gin"
	"github.com/reoring/goclean/schemafile"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	args := os.Args[2:]
	switch sub {
	case "validate":
		validateCmd(args)
	case "encode":
		encodeCmd(args)
	case "decode":
		decodeCmd(args)
	case "negotiate":
		negotiateCmd(args)
	case "jsonschema":
		jsonschemaCmd(args)
	case "serve":
		serveCmd(args)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `goclean CLI

Usage:
  goclean validate -schema s.yaml [file]
  goclean encode -charset utf-8 -encoding gzip [file]
  goclean decode -charset utf-8 -encoding gzip [file]
  goclean negotiate -charsets utf-8,latin-1 -encodings br,gzip [file]
  goclean jsonschema -schema s.yaml
  goclean serve -config goclean.yaml [-schema s.yaml] [-addr :8080]

Input is read from file, or stdin when no file is given.`)
}

// validateCmd cleans a JSON document and prints the result. Exits 1 when the
// document is rejected.
func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var schemaPath string
	var indent int
	fs.StringVar(&schemaPath, "schema", "", "schema document (YAML or JSON)")
	fs.IntVar(&indent, "indent", 2, "indent of the printed result")
	_ = fs.Parse(args)
	if schemaPath == "" {
		fs.Usage()
		os.Exit(2)
	}
	field, err := schemafile.Load(schemaPath)
	if err != nil {
		fatalf("schema: %v", err)
	}
	doc, err := jsoncodec.FromJSONBytes(readInput(fs.Arg(0)), jsoncodec.WithRejectDuplicateKeys(true))
	if err != nil {
		fatalf("input: %v", err)
	}
	cleaned, err := goclean.Clean(context.Background(), field, doc)
	if err != nil {
		for _, is := range goclean.ToIssues(err) {
			fmt.Fprintf(os.Stderr, "%s: %s (%s)\n", is.Path, is.Message, is.Code)
		}
		os.Exit(1)
	}
	printJSON(cleaned, indent)
}

func encodeCmd(args []string) {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	var charset, encoding string
	fs.StringVar(&charset, "charset", codec.DefaultCharset, "target charset")
	fs.StringVar(&encoding, "encoding", codec.DefaultEncoding, "content coding")
	_ = fs.Parse(args)
	out, err := codec.Encode(string(readInput(fs.Arg(0))), charset, encoding)
	if err != nil {
		fatalf("encode: %v", err)
	}
	_, _ = os.Stdout.Write(out)
}

func decodeCmd(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	var charset, encoding string
	fs.StringVar(&charset, "charset", codec.DefaultCharset, "source charset")
	fs.StringVar(&encoding, "encoding", codec.DefaultEncoding, "content coding")
	_ = fs.Parse(args)
	s, err := codec.Decode(readInput(fs.Arg(0)), charset, encoding)
	if err != nil {
		fatalf("decode: %v", err)
	}
	_, _ = io.WriteString(os.Stdout, s)
}

// negotiateCmd writes the negotiated bytes to stdout and reports the chosen
// charset and coding on stderr.
func negotiateCmd(args []string) {
	fs := flag.NewFlagSet("negotiate", flag.ExitOnError)
	var charsets, encodings string
	fs.StringVar(&charsets, "charsets", codec.DefaultCharset, "comma-separated charsets in preference order")
	fs.StringVar(&encodings, "encodings", codec.DefaultEncoding, "comma-separated content codings in preference order")
	_ = fs.Parse(args)
	n, err := codec.TryEncode(string(readInput(fs.Arg(0))), splitCSV(charsets), splitCSV(encodings))
	if err != nil {
		fatalf("negotiate: %v", err)
	}
	fmt.Fprintf(os.Stderr, "charset=%s encoding=%s bytes=%d\n", n.Charset, n.Encoding, len(n.Data))
	_, _ = os.Stdout.Write(n.Data)
}

func jsonschemaCmd(args []string) {
	fs := flag.NewFlagSet("jsonschema", flag.ExitOnError)
	var schemaPath string
	fs.StringVar(&schemaPath, "schema", "", "schema document (YAML or JSON)")
	_ = fs.Parse(args)
	if schemaPath == "" {
		fs.Usage()
		os.Exit(2)
	}
	field, err := schemafile.Load(schemaPath)
	if err != nil {
		fatalf("schema: %v", err)
	}
	s, err := dsl.Export(field)
	if err != nil {
		fatalf("export: %v", err)
	}
	printJSON(s, 2)
}

// serveCmd runs an HTTP server that cleans POSTed documents against the
// schema and answers with the cleaned value.
func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var cfgPath, schemaPath, addr string
	fs.StringVar(&cfgPath, "config", "", "config file (YAML, JSON or TOML)")
	fs.StringVar(&schemaPath, "schema", "", "schema document; overrides schema.path")
	fs.StringVar(&addr, "addr", "", "listen address; overrides server.addr")
	_ = fs.Parse(args)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fatalf("config: %v", err)
	}
	if schemaPath != "" {
		cfg.Schema.Path = schemaPath
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if cfg.Schema.Path == "" {
		fatalf("serve: no schema (set -schema or schema.path)")
	}
	log, err := logger.New(cfg.Log.LoggerOptions())
	if err != nil {
		fatalf("logger: %v", err)
	}
	defer func() { _ = log.Sync() }()

	field, err := schemafile.Load(cfg.Schema.Path)
	if err != nil {
		log.Fatal("schema load failed", zap.String("path", cfg.Schema.Path), zap.Error(err))
	}
	opts := []middleware.Option{
		middleware.WithCharsets(cfg.Negotiation.Charsets...),
		middleware.WithEncodings(cfg.Negotiation.Encodings...),
		middleware.WithJSON(cfg.JSON.JSONOptions()...),
		middleware.WithLogger(log),
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.POST("/", ginmw.Clean(field, opts...), func(c *gin.Context) {
		v, _ := ginmw.Cleaned(c)
		ginmw.Respond(c, http.StatusOK, v, opts...)
	})
	r.GET("/schema", func(c *gin.Context) {
		s, err := dsl.Export(field)
		if err != nil {
			ginmw.Respond(c, http.StatusNotImplemented, middleware.ErrorPayload(err), opts...)
			return
		}
		c.JSON(http.StatusOK, s)
	})

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		log.Info("listening", zap.String("addr", cfg.Server.Addr), zap.String("schema", cfg.Schema.Path))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
	log.Info("stopped")
}

func readInput(path string) []byte {
	var (
		b   []byte
		err error
	)
	if path == "" || path == "-" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		fatalf("reading input: %v", err)
	}
	return b
}

func printJSON(v any, indent int) {
	s, err := jsoncodec.ToJSONString(v, jsoncodec.WithIndent(indent), jsoncodec.WithEnsureASCII(false))
	if err != nil {
		fatalf("encode output: %v", err)
	}
	fmt.Println(s)
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
