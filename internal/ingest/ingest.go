// Package ingest implements the usecase that turns the upstream utf_ken_all
// zip archive into a fresh, normalized dataset in the repository. Grounded
// on original_source/jp-postal-code/src/usecase.rs's
// update_postal_code_database: download -> unzip -> parse CSV rows ->
// normalize each row's town/town_kana fields -> pair the two result lists ->
// replace the repository's dataset.
package ingest

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/address-parser/internal/model"
	"github.com/address-parser/internal/normalizer"
	"github.com/address-parser/internal/repository"
)

// overSplitLogSampleRate bounds how often the usecase logs a bare-comma
// over-split signal: one line per this many hits, not one per record, so a
// dataset with many over-eager splits doesn't flood the log.
const overSplitLogSampleRate = 50

// Stats summarizes a single ingestion run, surfaced at the
// GET /v1/admin/ingest/stats route (SPEC_FULL.md §11.4/§12).
type Stats struct {
	RecordsParsed      int
	RecordsNormalized  int
	PairingMismatches  int
	SampledOverSplits  int
}

// Source supplies the raw zip bytes for a run. Production wiring is
// Download (download.go); tests substitute an in-memory reader.
type Source func(ctx context.Context) ([]byte, error)

// Usecase drives a single download+parse+normalize+replace pass.
type Usecase struct {
	source     Source
	repo       repository.Repository
	reindexer  Reindexer
	logger     *zap.Logger
}

// Reindexer is satisfied by internal/search.TownIndex. Kept as a narrow
// interface here so the usecase does not import the search package
// directly and can run (Meilisearch-less) in tests via a nil Reindexer.
type Reindexer interface {
	ReplaceAll(ctx context.Context, records []model.PostalRecord) error
}

// New builds a Usecase. reindexer may be nil (Meilisearch not configured);
// the usecase then skips the supplemental search index rebuild, mirroring
// CachedRepository's nil-Redis MVP fallback.
func New(source Source, repo repository.Repository, reindexer Reindexer, logger *zap.Logger) *Usecase {
	return &Usecase{source: source, repo: repo, reindexer: reindexer, logger: logger}
}

// Run executes one full ingestion pass and returns its Stats.
func (u *Usecase) Run(ctx context.Context) (Stats, error) {
	raw, err := u.source(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("ingest: failed to fetch source: %w", err)
	}

	rows, err := extractCSV(raw)
	if err != nil {
		return Stats{}, fmt.Errorf("ingest: failed to extract utf_ken_all.csv: %w", err)
	}

	records, err := parseRows(rows)
	if err != nil {
		return Stats{}, fmt.Errorf("ingest: failed to parse rows: %w", err)
	}

	stats := Stats{RecordsParsed: len(records)}
	normalized := make([]model.PostalRecord, 0, len(records))

	for _, rec := range records {
		towns, diag := normalizer.NormalizeTownDiagnostics(rec)
		townsKana, diagKana := normalizer.NormalizeTownKanaDiagnostics(rec)

		if diag.BareCommaOverSplit || diagKana.BareCommaOverSplit {
			stats.SampledOverSplits++
			if stats.SampledOverSplits%overSplitLogSampleRate == 1 {
				u.logger.Debug("bare_comma_over_split",
					zap.String("postal_code", rec.PostalCode),
					zap.Int("town_comma_count", diag.CommaCount),
					zap.Int("town_kana_comma_count", diagKana.CommaCount))
			}
		}

		pairLen := len(towns)
		if len(townsKana) != len(towns) {
			stats.PairingMismatches++
			u.logger.Warn("ambiguous_pairing",
				zap.String("postal_code", rec.PostalCode),
				zap.Int("town_count", len(towns)),
				zap.Int("town_kana_count", len(townsKana)))
			if len(townsKana) < pairLen {
				pairLen = len(townsKana)
			}
		}

		for i := 0; i < pairLen; i++ {
			row := rec
			row.Town = towns[i]
			row.TownKana = townsKana[i]
			normalized = append(normalized, row)
		}
	}
	stats.RecordsNormalized = len(normalized)

	if err := u.repo.Replace(ctx, normalized); err != nil {
		return stats, fmt.Errorf("ingest: failed to replace repository dataset: %w", err)
	}

	if u.reindexer != nil {
		if err := u.reindexer.ReplaceAll(ctx, normalized); err != nil {
			u.logger.Warn("failed to rebuild supplemental search index", zap.Error(err))
		}
	}

	u.logger.Info("ingestion run complete",
		zap.Int("parsed", stats.RecordsParsed),
		zap.Int("normalized", stats.RecordsNormalized),
		zap.Int("pairing_mismatches", stats.PairingMismatches),
		zap.Int("sampled_over_splits", stats.SampledOverSplits))

	return stats, nil
}

// extractCSV pulls the single CSV entry out of the single-entry zip archive
// the upstream file arrives as (spec.md §6).
func extractCSV(zipBytes []byte) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return nil, err
	}
	if len(r.File) == 0 {
		return nil, fmt.Errorf("zip archive has no entries")
	}

	f, err := r.File[0].Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

// csvColumnCount is the number of columns in a utf_ken_all row, per Japan
// Post's published "郵便番号データ（1レコード1行、UTF-8形式）" layout.
const csvColumnCount = 15

// parseRows reads headerless utf_ken_all CSV rows into PostalRecord values.
// Column order follows Japan Post's published layout (spec.md §6).
func parseRows(csvBytes []byte) ([]model.PostalRecord, error) {
	reader := csv.NewReader(bytes.NewReader(csvBytes))
	reader.FieldsPerRecord = csvColumnCount

	var records []model.PostalRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		updateCode, _ := strconv.Atoi(row[13])
		updateReason, _ := strconv.Atoi(row[14])

		records = append(records, model.PostalRecord{
			LocalGovernmentCode: row[0],
			OldPostalCode:       row[1],
			PostalCode:          row[2],
			PrefectureKana:      row[3],
			CityKana:            row[4],
			TownKana:            row[5],
			Prefecture:          row[6],
			City:                row[7],
			Town:                row[8],
			HasMultiPostalCode:  row[9] == "1",
			HasChome:            row[11] == "1",
			HasMultiTown:        row[12] == "1",
			UpdateCode:          updateCode,
			UpdateReason:        updateReason,
		})
	}
	return records, nil
}
