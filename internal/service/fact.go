package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"catfacts/internal/model"
	"catfacts/internal/repository"
	"catfacts/internal/storage"
	"catfacts/internal/upstream"
)

var tracer = otel.Tracer("catfacts/internal/service")

// FactService defines the use cases for fetching and browsing facts.
type FactService interface {
	// FetchAndStore pulls one fact from the upstream API and persists it.
	// Upstream errors are returned unchanged and nothing is stored.
	FetchAndStore(ctx context.Context) (string, error)

	// History returns stored facts newest first. The query is trimmed; a blank query means no filter.
	History(ctx context.Context, query string) ([]model.Fact, error)
}

// Archiver receives a copy of every stored fact.
type Archiver interface {
	Save(ctx context.Context, text string) (storage.ObjectInfo, error)
}

// factService is a concrete implementation of FactService.
type factService struct {
	source  upstream.FactSource
	repo    repository.FactRepository
	archive Archiver
	log     logrus.FieldLogger
}

// NewFactService constructs a new FactService. archive may be nil.
func NewFactService(source upstream.FactSource, repo repository.FactRepository, archive Archiver, log logrus.FieldLogger) FactService {
	return &factService{source: source, repo: repo, archive: archive, log: log}
}

func (s *factService) FetchAndStore(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "FactService.FetchAndStore", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	text, err := s.source.FetchFact(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upstream fetch failed")
		return "", err
	}
	span.SetAttributes(attribute.Int("fact.length", len(text)))

	if err := s.repo.Insert(ctx, text); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return "", fmt.Errorf("save fact: %w", err)
	}

	if s.archive != nil {
		if info, err := s.archive.Save(ctx, text); err != nil {
			s.log.WithFields(logrus.Fields{
				"component": "archive",
				"event":     "fact_archive_failed",
			}).WithError(err).Warn("failed to archive fact")
		} else {
			s.log.WithFields(logrus.Fields{
				"component": "archive",
				"event":     "fact_archived",
				"key":       info.Key,
			}).Debug("fact archived")
		}
	}

	return text, nil
}

// History trims the query and returns matching facts.
func (s *factService) History(ctx context.Context, query string) ([]model.Fact, error) {
	ctx, span := tracer.Start(ctx, "FactService.History")
	defer span.End()

	filter := strings.TrimSpace(query)
	span.SetAttributes(attribute.Bool("history.filtered", filter != ""))

	facts, err := s.repo.Query(ctx, filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, fmt.Errorf("query facts: %w", err)
	}
	return facts, nil
}
