// matricula-cli runs the Dojô Uemura enrollment form as an interactive
// terminal session. Configuration comes from flags, environment variables and
// an optional YAML file, in that order of precedence.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dojouemura/go-matricula/pkg/backend"
	"github.com/dojouemura/go-matricula/pkg/draft"
	"github.com/dojouemura/go-matricula/pkg/postal"
	"github.com/dojouemura/go-matricula/pkg/tui"
	"github.com/dojouemura/go-matricula/pkg/validate"
	"github.com/dojouemura/go-matricula/pkg/workflow"
)

type config struct {
	APIBaseURL    string `env:"MATRICULA_API_URL" yaml:"api_url"`
	PostalBaseURL string `env:"MATRICULA_VIACEP_URL" yaml:"viacep_url"`
	DraftPath     string `env:"MATRICULA_DRAFT_PATH" yaml:"draft_path"`
	DraftBackend  string `env:"MATRICULA_DRAFT_BACKEND" envDefault:"file" yaml:"draft_backend"`
	Verbose       bool   `env:"MATRICULA_VERBOSE" yaml:"verbose"`
}

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	apiURL := flag.String("api-url", "", "enrollment API base URL")
	viacepURL := flag.String("viacep-url", "", "postal lookup base URL")
	draftPath := flag.String("draft", "", "draft file or database path")
	draftBackend := flag.String("draft-backend", "", "draft storage backend (file, sqlite)")
	verbose := flag.Bool("verbose", false, "log workflow diagnostics")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *apiURL != "" {
		cfg.APIBaseURL = *apiURL
	}
	if *viacepURL != "" {
		cfg.PostalBaseURL = *viacepURL
	}
	if *draftPath != "" {
		cfg.DraftPath = *draftPath
	}
	if *draftBackend != "" {
		cfg.DraftBackend = *draftBackend
	}
	if *verbose {
		cfg.Verbose = true
	}

	if err := run(cfg); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			fmt.Println("\nInscrição interrompida. O rascunho foi mantido.")
			return
		}
		log.Fatalf("matricula-cli: %v", err)
	}
}

func loadConfig(path string) (config, error) {
	var cfg config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return config{}, fmt.Errorf("read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func run(cfg config) error {
	ctx := context.Background()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	api := backend.NewClient(backend.WithBaseURL(cfg.APIBaseURL))
	resolver := postal.NewClient(postal.WithBaseURL(cfg.PostalBaseURL))

	logOut := io.Discard
	if cfg.Verbose {
		logOut = os.Stderr
	}
	logger := log.New(logOut, "", log.LstdFlags)

	ctrl := workflow.New(
		workflow.WithStore(store),
		workflow.WithBackend(api),
		workflow.WithPostal(resolver),
		workflow.WithLogger(logger),
	)
	defer ctrl.Wait()

	printBanner(api.CompanyInfo(ctx))

	form := tui.NewForm(ctrl, tui.NewSurveyDriver())
	return form.Run(ctx)
}

func openStore(cfg config) (draft.Store, func(), error) {
	switch cfg.DraftBackend {
	case "", "file":
		return draft.NewFileStore(cfg.DraftPath), func() {}, nil
	case "sqlite":
		path := cfg.DraftPath
		if path == "" {
			path = draft.Key + ".db"
		}
		store, err := draft.OpenSQLStore(path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown draft backend %q (use file or sqlite)", cfg.DraftBackend)
	}
}

func printBanner(company backend.Company) {
	fmt.Printf("%s — Formulário de Inscrição\n", company.TradeName)
	fmt.Printf("%s, %s %s — %s, %s/%s\n",
		company.Street, company.Number, company.Complement,
		company.District, company.City, company.Region)
	fmt.Printf("CNPJ %s · %s · %s\n\n",
		validate.FormatCNPJ(company.CNPJ), company.Phone, company.Email)
}
