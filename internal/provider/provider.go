package provider

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/geoquiz/backend/internal/domain/dataset"
	"github.com/geoquiz/backend/internal/store"
	"github.com/geoquiz/backend/internal/worker"
)

var ErrNoEntries = errors.New("no questions found")

// Scraper is the remote source of entries and flag images.
type Scraper interface {
	FetchEntries(ctx context.Context) ([]dataset.Entry, error)
	FetchFlagURL(ctx context.Context, country string) (string, error)
	Download(ctx context.Context, url, dst string) error
}

type Config struct {
	CachePath   string // SQLite cache file
	FlagsDir    string // one PNG per country
	FlagWorkers int    // concurrent flag downloads, 1 = sequential
}

// FlagReport summarizes one pass over the flags directory.
type FlagReport struct {
	Present    int
	Downloaded int
	Failed     int
}

// Provider produces the dataset, from the cache file when it exists and
// from the remote source otherwise.
type Provider struct {
	cfg     Config
	scraper Scraper
	logger  *slog.Logger
}

func New(cfg Config, s Scraper, logger *slog.Logger) *Provider {
	return &Provider{
		cfg:     cfg,
		scraper: s,
		logger:  logger,
	}
}

// Load returns the dataset. A cache file, when present, is trusted as is.
// Otherwise the dataset is scraped, flags are downloaded and the cache is
// written for the next run.
func (p *Provider) Load(ctx context.Context) (*dataset.Dataset, error) {
	_, err := os.Stat(p.cfg.CachePath)
	switch {
	case err == nil:
		return p.loadCache(ctx)
	case errors.Is(err, fs.ErrNotExist):
		return p.scrape(ctx)
	default:
		return nil, fmt.Errorf("stat cache: %w", err)
	}
}

// FlagPath is where the flag of country is stored.
func (p *Provider) FlagPath(country string) string {
	return filepath.Join(p.cfg.FlagsDir, dataset.FlagFileName(country))
}

func (p *Provider) loadCache(ctx context.Context) (*dataset.Dataset, error) {
	s, err := store.NewSQLite(p.cfg.CachePath)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	defer s.Close()

	d, err := s.LoadDataset(ctx)
	if errors.Is(err, store.ErrEmpty) {
		return nil, fmt.Errorf("%w in cache %s", ErrNoEntries, p.cfg.CachePath)
	}
	if err != nil {
		return nil, fmt.Errorf("load cache: %w", err)
	}

	p.logger.Info("loaded dataset from cache", "path", p.cfg.CachePath, "entries", d.Len())
	return d, nil
}

func (p *Provider) scrape(ctx context.Context) (*dataset.Dataset, error) {
	entries, err := p.scraper.FetchEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("download data: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	d := dataset.New(entries)
	if err := d.Validate(); err != nil {
		p.logger.Warn("scraped dataset has duplicate names", "error", err)
	}

	report, err := p.DownloadFlags(ctx, d.Countries)
	if err != nil {
		return nil, err
	}
	p.logger.Info("flags synchronized",
		"present", report.Present,
		"downloaded", report.Downloaded,
		"failed", report.Failed,
	)

	if err := p.save(ctx, d); err != nil {
		return nil, err
	}

	p.logger.Info("dataset cached", "path", p.cfg.CachePath, "entries", d.Len())
	return d, nil
}

func (p *Provider) save(ctx context.Context, d *dataset.Dataset) error {
	s, err := store.NewSQLite(p.cfg.CachePath)
	if err != nil {
		return fmt.Errorf("create cache: %w", err)
	}

	saveErr := s.SaveDataset(ctx, d)
	closeErr := s.Close()
	if err := errors.Join(saveErr, closeErr); err != nil {
		// A half-written cache would be trusted on the next run.
		os.Remove(p.cfg.CachePath)
		return fmt.Errorf("save cache: %w", err)
	}
	return nil
}

// DownloadFlags fetches the flag of every country that has no file yet.
// A failed flag is logged and skipped; only a cancelled context aborts.
func (p *Provider) DownloadFlags(ctx context.Context, countries []string) (FlagReport, error) {
	var report FlagReport

	if err := os.MkdirAll(p.cfg.FlagsDir, 0o755); err != nil {
		return report, fmt.Errorf("create flags dir: %w", err)
	}

	seen := make(map[string]bool, len(countries))
	var missing []string
	for _, country := range countries {
		path := p.FlagPath(country)
		if seen[path] {
			continue
		}
		seen[path] = true

		if _, err := os.Stat(path); err == nil {
			report.Present++
			continue
		}
		missing = append(missing, country)
	}

	pool := worker.NewPool[error](p.cfg.FlagWorkers, len(missing))
	for _, country := range missing {
		pool.Submit(country, func() error {
			return p.downloadFlag(ctx, country)
		})
	}
	pool.Close()

	for res := range pool.Results() {
		if res.Output != nil {
			report.Failed++
			p.logger.Warn("skipping flag", "country", res.JobID, "error", res.Output)
			continue
		}
		report.Downloaded++
	}

	return report, ctx.Err()
}

func (p *Provider) downloadFlag(ctx context.Context, country string) error {
	url, err := p.scraper.FetchFlagURL(ctx, country)
	if err != nil {
		return err
	}
	if err := p.scraper.Download(ctx, url, p.FlagPath(country)); err != nil {
		return err
	}
	p.logger.Debug("downloaded flag", "country", country, "url", url)
	return nil
}
