package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/matside/pkg/insight"
	"github.com/m-mizutani/matside/pkg/model"
	"github.com/m-mizutani/matside/pkg/utils/logging"
)

// AnalysisResult is a structured report over the latest records of a category
type AnalysisResult struct {
	Insight *model.Insight
	Records []*model.Record
}

// Analysis generates a report over the latest insight.AnalysisLimit records
func (u *UseCase) Analysis(ctx context.Context, category model.Category) (*AnalysisResult, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}

	records, err := u.repo.ListRecords(ctx, category, insight.AnalysisLimit)
	if err != nil {
		return nil, goerr.Wrap(errors.Join(ErrPersistence, err), "failed to fetch records for analysis",
			goerr.V("category", category))
	}

	prompt, err := insight.AnalysisPrompt(category, records)
	if err != nil {
		return nil, err
	}

	text, err := u.generator.Submit(ctx, prompt)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate analysis", goerr.V("category", category))
	}

	result := &AnalysisResult{
		Insight: insight.Build(category, text),
		Records: records,
	}
	result.Insight.CreatedAt = u.now()

	if u.archive != nil {
		// a lost archive copy does not fail the request
		if err := u.store(ctx, result); err != nil {
			logging.From(ctx).Warn("failed to archive analysis", "error", err, "category", category)
		}
	}

	return result, nil
}

// archivedReport is the object layout of an archived analysis
type archivedReport struct {
	*model.Insight
	Data []*model.Record `json:"data"`
}

// ArchivedAnalysis reads back a report stored under key by Analysis
func (u *UseCase) ArchivedAnalysis(ctx context.Context, key string) (*AnalysisResult, error) {
	if u.archive == nil {
		return nil, goerr.Wrap(ErrArchiveDisabled, "cannot read archived analysis", goerr.V("key", key))
	}

	r, err := u.archive.Get(ctx, key)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open archived analysis", goerr.V("key", key))
	}
	defer r.Close()

	var report archivedReport
	if err := json.NewDecoder(r).Decode(&report); err != nil {
		return nil, goerr.Wrap(err, "failed to decode archived analysis", goerr.V("key", key))
	}
	if report.Insight == nil {
		return nil, goerr.New("archived analysis has no insight", goerr.V("key", key))
	}
	if report.Data == nil {
		report.Data = []*model.Record{}
	}

	return &AnalysisResult{
		Insight: report.Insight,
		Records: report.Data,
	}, nil
}

// ArchiveKey is the object key an analysis report is archived under
func ArchiveKey(in *model.Insight) string {
	return fmt.Sprintf("analysis/%s/%s.json", in.Category, in.CreatedAt.UTC().Format("20060102T150405.000Z"))
}

func (u *UseCase) store(ctx context.Context, result *AnalysisResult) error {
	key := ArchiveKey(result.Insight)

	w, err := u.archive.Put(ctx, key)
	if err != nil {
		return goerr.Wrap(err, "failed to open archive object", goerr.V("key", key))
	}

	report := archivedReport{Insight: result.Insight, Data: result.Records}

	if err := json.NewEncoder(w).Encode(report); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to write archive object", goerr.V("key", key))
	}

	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to close archive object", goerr.V("key", key))
	}

	logging.From(ctx).Debug("analysis archived", "key", key)
	return nil
}
