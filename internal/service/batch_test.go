package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"time"

	"go.uber.org/mock/gomock"

	"catalog_writer/internal/domain"
	"catalog_writer/internal/generator"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func eligible(n int, kind domain.Kind) []domain.CatalogItem {
	out := make([]domain.CatalogItem, n)
	for i := range out {
		out[i] = domain.CatalogItem{
			ID:         int64(i + 1),
			Kind:       kind,
			ExternalID: fmt.Sprint(100 + i + 1),
			Title:      fmt.Sprintf("Item %d", i+1),
			Status:     domain.StatusPending,
		}
	}
	return out
}

func (s *ServiceTestSuite) expectBatchStart(items []domain.CatalogItem) {
	s.expectActive()
	s.items.EXPECT().ReleaseStale(gomock.Any(), 30*time.Minute, 5).Return(0, nil)
	s.items.EXPECT().ListEligible(gomock.Any(), s.cfg.BatchSize).Return(items, nil)
}

func (s *ServiceTestSuite) expectCompleted(item domain.CatalogItem, title string) {
	s.contents.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c *domain.GeneratedContent) error {
			s.Equal(item.ExternalID, c.ExternalID)
			s.Equal(title, c.Title)
			return nil
		},
	)
	s.items.EXPECT().MarkCompleted(gomock.Any(), item.ID, title).Return(nil)
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
}

func fullResult(title string) *domain.GenerationResult {
	return &domain.GenerationResult{
		Mode:            domain.ModeFull,
		Origin:          domain.OriginModel,
		Title:           title,
		DescriptionHTML: "<p>Fresh copy.</p>",
		Keywords:        []string{"handmade mug", "short mug"},
	}
}

func (s *ServiceTestSuite) TestProcessBatch_ModeSelection() {
	items := eligible(2, domain.KindProduct)
	s.expectBatchStart(items)

	for _, it := range items {
		s.items.EXPECT().Claim(gomock.Any(), it.ID).Return(true, nil)
	}

	s.catalog.EXPECT().GetDetail(gomock.Any(), domain.KindProduct, "101").Return(&domain.ItemDetail{
		ExternalID: "101",
		Title:      "NEW! Short Mug",
		BodyHTML:   "<p>" + words(40) + "</p>",
	}, nil)
	s.catalog.EXPECT().GetDetail(gomock.Any(), domain.KindProduct, "102").Return(&domain.ItemDetail{
		ExternalID: "102",
		Title:      "Long Mug",
		BodyHTML:   "<div>" + words(120) + "</div><p>" + words(100) + "</p>",
	}, nil)

	s.generator.EXPECT().GenerateFull(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, in domain.GenerationInput) (*domain.GenerationResult, error) {
			s.Equal("Short Mug", in.Title)
			s.Equal(40, len(strings.Fields(in.Description)))
			return fullResult("Short Mug, Handmade!"), nil
		},
	)
	s.generator.EXPECT().GenerateMetaOnly(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, in domain.GenerationInput) (*domain.GenerationResult, error) {
			s.Equal(220, len(strings.Fields(in.Description)))
			return &domain.GenerationResult{
				Mode:            domain.ModeMeta,
				Origin:          domain.OriginModel,
				Title:           "Long Mug",
				MetaTitle:       "Long Mug | Shop",
				MetaDescription: "A long mug.",
			}, nil
		},
	)

	s.catalog.EXPECT().Update(gomock.Any(), domain.KindProduct, "101", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.Kind, _ string, f domain.UpdateFields) error {
			s.Require().NotNil(f.Title)
			s.Equal("Short Mug Handmade", *f.Title)
			s.Require().NotNil(f.BodyHTML)
			s.Equal("<p>Fresh copy.</p>", *f.BodyHTML)
			s.Nil(f.MetaTitle)
			s.Nil(f.MetaDescription)
			return nil
		},
	)
	s.catalog.EXPECT().Update(gomock.Any(), domain.KindProduct, "102", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.Kind, _ string, f domain.UpdateFields) error {
			s.Nil(f.BodyHTML, "long descriptions are kept")
			s.Require().NotNil(f.MetaTitle)
			s.Equal("Long Mug | Shop", *f.MetaTitle)
			s.Require().NotNil(f.MetaDescription)
			s.Equal("A long mug.", *f.MetaDescription)
			return nil
		},
	)

	s.expectCompleted(items[0], "Short Mug Handmade")
	s.expectCompleted(items[1], "Long Mug")

	stats, err := s.newService().ProcessBatch(context.Background())
	s.Require().NoError(err)
	s.Equal(2, stats.Completed)
	s.Equal(2, stats.Processed)
	s.NotEmpty(stats.RunID)
}

func (s *ServiceTestSuite) TestProcessBatch_StoresKeywordsOnAuditRow() {
	items := eligible(1, domain.KindProduct)
	s.expectBatchStart(items)
	s.items.EXPECT().Claim(gomock.Any(), items[0].ID).Return(true, nil)
	s.catalog.EXPECT().GetDetail(gomock.Any(), domain.KindProduct, "101").Return(&domain.ItemDetail{
		ExternalID: "101",
		Title:      "Short Mug",
	}, nil)
	s.generator.EXPECT().GenerateFull(gomock.Any(), gomock.Any()).Return(fullResult("Short Mug"), nil)
	s.catalog.EXPECT().Update(gomock.Any(), domain.KindProduct, "101", gomock.Any()).Return(nil)
	s.contents.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c *domain.GeneratedContent) error {
			s.Equal([]string{"handmade mug", "short mug"}, c.Keywords)
			s.Equal("handmade mug", c.FocusKeyword)
			return nil
		},
	)
	s.items.EXPECT().MarkCompleted(gomock.Any(), items[0].ID, "Short Mug").Return(nil)
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	stats, err := s.newService().ProcessBatch(context.Background())
	s.Require().NoError(err)
	s.Equal(1, stats.Completed)
}

func (s *ServiceTestSuite) TestProcessBatch_IsolatesFailures() {
	items := eligible(5, domain.KindProduct)
	s.expectBatchStart(items)

	for _, it := range items {
		s.items.EXPECT().Claim(gomock.Any(), it.ID).Return(true, nil)
		s.catalog.EXPECT().GetDetail(gomock.Any(), domain.KindProduct, it.ExternalID).
			Return(&domain.ItemDetail{ExternalID: it.ExternalID, Title: it.Title}, nil)
	}
	s.generator.EXPECT().GenerateFull(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, in domain.GenerationInput) (*domain.GenerationResult, error) {
			return fullResult(in.Title + " Rewritten"), nil
		},
	).Times(5)

	for i, it := range items {
		if i == 2 {
			s.catalog.EXPECT().Update(gomock.Any(), domain.KindProduct, it.ExternalID, gomock.Any()).
				Return(errors.New("unexpected status: 422"))
			s.items.EXPECT().MarkFailed(gomock.Any(), it.ID, gomock.Any(), 5).DoAndReturn(
				func(_ context.Context, _ int64, reason string, _ int) (domain.ItemStatus, error) {
					s.Contains(reason, "write back")
					return domain.StatusFailed, nil
				},
			)
			continue
		}
		s.catalog.EXPECT().Update(gomock.Any(), domain.KindProduct, it.ExternalID, gomock.Any()).Return(nil)
		s.expectCompleted(it, it.Title+" Rewritten")
	}

	stats, err := s.newService().ProcessBatch(context.Background())
	s.Require().NoError(err)
	s.Equal(5, stats.Selected)
	s.Equal(5, stats.Processed)
	s.Equal(4, stats.Completed)
	s.Equal(1, stats.Failed)
}

func (s *ServiceTestSuite) TestProcessBatch_FallbackGuarantee() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "Sorry, I can't do JSON today :("}},
			},
		})
	}))
	defer srv.Close()

	gen := generator.New(generator.Config{Endpoint: srv.URL, Model: "m", Timeout: 5 * time.Second}, s.logger)
	svc := New(Deps{
		Catalog:   s.catalog,
		Generator: gen,
		Items:     s.items,
		Contents:  s.contents,
		State:     s.state,
		TxManager: s.txManager,
		Locker:    s.locker,
	}, s.cfg, s.logger)

	items := eligible(1, domain.KindProduct)
	s.expectBatchStart(items)
	s.items.EXPECT().Claim(gomock.Any(), items[0].ID).Return(true, nil)
	s.catalog.EXPECT().GetDetail(gomock.Any(), domain.KindProduct, "101").Return(&domain.ItemDetail{
		ExternalID: "101",
		Title:      "Men's T-Shirt!! -- Blue (Large Letter Rate)",
		BodyHTML:   "<p>Soft cotton tee.</p>",
	}, nil)

	var written domain.UpdateFields
	s.catalog.EXPECT().Update(gomock.Any(), domain.KindProduct, "101", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.Kind, _ string, f domain.UpdateFields) error {
			written = f
			return nil
		},
	)
	s.contents.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c *domain.GeneratedContent) error {
			s.Equal(domain.OriginFallback, c.Origin)
			s.Equal(domain.ModeFull, c.Mode)
			s.Require().NotEmpty(c.Keywords)
			s.LessOrEqual(len(c.Keywords), generator.MaxKeywords)
			s.Equal(c.Keywords[0], c.FocusKeyword)
			return nil
		},
	)
	s.items.EXPECT().MarkCompleted(gomock.Any(), items[0].ID, "Mens TShirt Blue").Return(nil)

	stats, err := svc.ProcessBatch(context.Background())
	s.Require().NoError(err)
	s.Equal(1, stats.Completed)

	s.Require().NotNil(written.Title)
	s.Regexp(regexp.MustCompile(`^[\p{L}\p{N}]+( [\p{L}\p{N}]+)*$`), *written.Title)
	s.Require().NotNil(written.BodyHTML)
	s.Contains(*written.BodyHTML, "Soft cotton tee.")
}

func (s *ServiceTestSuite) TestProcessBatch_AbandonsAtMaxAttempts() {
	items := eligible(1, domain.KindCollection)
	items[0].Attempts = 4
	s.expectBatchStart(items)

	s.items.EXPECT().Claim(gomock.Any(), items[0].ID).Return(true, nil)
	s.catalog.EXPECT().GetDetail(gomock.Any(), domain.KindCollection, "101").
		Return(nil, fmt.Errorf("custom_collection 101: %w", domain.ErrNotFound))
	s.items.EXPECT().MarkFailed(gomock.Any(), items[0].ID, gomock.Any(), 5).Return(domain.StatusAbandoned, nil)

	stats, err := s.newService().ProcessBatch(context.Background())
	s.Require().NoError(err)
	s.Equal(1, stats.Abandoned)
	s.Equal(0, stats.Failed)
	s.Equal(1, stats.Processed)
}

func (s *ServiceTestSuite) TestProcessBatch_GenerationErrorFailsItem() {
	items := eligible(1, domain.KindProduct)
	s.expectBatchStart(items)

	s.items.EXPECT().Claim(gomock.Any(), items[0].ID).Return(true, nil)
	s.catalog.EXPECT().GetDetail(gomock.Any(), domain.KindProduct, "101").
		Return(&domain.ItemDetail{ExternalID: "101", Title: "Mug"}, nil)
	s.generator.EXPECT().GenerateFull(gomock.Any(), gomock.Any()).
		Return(nil, &generator.GenerationError{Mode: domain.ModeFull, Err: errors.New("unexpected status: 503")})
	s.items.EXPECT().MarkFailed(gomock.Any(), items[0].ID, gomock.Any(), 5).Return(domain.StatusFailed, nil)

	stats, err := s.newService().ProcessBatch(context.Background())
	s.Require().NoError(err)
	s.Equal(1, stats.Failed)
}

func (s *ServiceTestSuite) TestProcessBatch_SkipsItemsClaimedElsewhere() {
	items := eligible(2, domain.KindProduct)
	s.expectBatchStart(items)

	s.items.EXPECT().Claim(gomock.Any(), items[0].ID).Return(false, nil)
	s.items.EXPECT().Claim(gomock.Any(), items[1].ID).Return(true, nil)
	s.catalog.EXPECT().GetDetail(gomock.Any(), domain.KindProduct, "102").
		Return(&domain.ItemDetail{ExternalID: "102", Title: "Mug"}, nil)
	s.generator.EXPECT().GenerateFull(gomock.Any(), gomock.Any()).Return(fullResult("Mug"), nil)
	s.catalog.EXPECT().Update(gomock.Any(), domain.KindProduct, "102", gomock.Any()).Return(nil)
	s.expectCompleted(items[1], "Mug")

	stats, err := s.newService().ProcessBatch(context.Background())
	s.Require().NoError(err)
	s.Equal(1, stats.Skipped)
	s.Equal(1, stats.Completed)
	s.Equal(1, stats.Processed)
}

func (s *ServiceTestSuite) TestProcessBatch_PublishFailureDoesNotFailItem() {
	items := eligible(1, domain.KindProduct)
	s.expectBatchStart(items)

	s.items.EXPECT().Claim(gomock.Any(), items[0].ID).Return(true, nil)
	s.catalog.EXPECT().GetDetail(gomock.Any(), domain.KindProduct, "101").
		Return(&domain.ItemDetail{ExternalID: "101", Title: "Mug"}, nil)
	s.generator.EXPECT().GenerateFull(gomock.Any(), gomock.Any()).Return(fullResult("Mug"), nil)
	s.catalog.EXPECT().Update(gomock.Any(), domain.KindProduct, "101", gomock.Any()).Return(nil)
	s.contents.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
	s.items.EXPECT().MarkCompleted(gomock.Any(), items[0].ID, "Mug").Return(nil)
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("channel closed"))

	stats, err := s.newService().ProcessBatch(context.Background())
	s.Require().NoError(err)
	s.Equal(1, stats.Completed)
}

func (s *ServiceTestSuite) TestProcessBatch_RefusedWhilePaused() {
	s.state.EXPECT().Get(gomock.Any()).Return(&domain.SystemState{IsPaused: true, AutoPauseTriggered: true}, nil)

	_, err := s.newService().ProcessBatch(context.Background())
	s.ErrorIs(err, domain.ErrPaused)
}

func (s *ServiceTestSuite) TestProcessBatch_NoDelayAfterLastItem() {
	s.cfg.ItemDelay = time.Hour
	items := eligible(1, domain.KindProduct)
	s.expectBatchStart(items)

	s.items.EXPECT().Claim(gomock.Any(), items[0].ID).Return(true, nil)
	s.catalog.EXPECT().GetDetail(gomock.Any(), domain.KindProduct, "101").
		Return(&domain.ItemDetail{ExternalID: "101", Title: "Mug"}, nil)
	s.generator.EXPECT().GenerateFull(gomock.Any(), gomock.Any()).Return(fullResult("Mug"), nil)
	s.catalog.EXPECT().Update(gomock.Any(), domain.KindProduct, "101", gomock.Any()).Return(nil)
	s.expectCompleted(items[0], "Mug")

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := s.newService().ProcessBatch(context.Background())
		s.NoError(err)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		s.Fail("batch waited after its last item")
	}
}

func (s *ServiceTestSuite) TestProcessBatch_DelayIsCancellable() {
	s.cfg.ItemDelay = time.Hour
	items := eligible(2, domain.KindProduct)
	s.expectBatchStart(items)

	ctx, cancel := context.WithCancel(context.Background())

	s.items.EXPECT().Claim(gomock.Any(), items[0].ID).Return(true, nil)
	s.catalog.EXPECT().GetDetail(gomock.Any(), domain.KindProduct, "101").
		Return(&domain.ItemDetail{ExternalID: "101", Title: "Mug"}, nil)
	s.generator.EXPECT().GenerateFull(gomock.Any(), gomock.Any()).Return(fullResult("Mug"), nil)
	s.catalog.EXPECT().Update(gomock.Any(), domain.KindProduct, "101", gomock.Any()).Return(nil)
	s.contents.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
	s.items.EXPECT().MarkCompleted(gomock.Any(), items[0].ID, "Mug").Return(nil)
	s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, *domain.GeneratedContent) error {
			cancel()
			return nil
		},
	)

	stats, err := s.newService().ProcessBatch(ctx)
	s.Require().NoError(err)
	s.Equal(1, stats.Completed)
	s.Equal(1, stats.Processed, "second item is left for the next run")
}

func (s *ServiceTestSuite) TestProcessBatch_ReleasesStaleItems() {
	s.expectActive()
	s.items.EXPECT().ReleaseStale(gomock.Any(), 30*time.Minute, 5).Return(3, nil)
	s.items.EXPECT().ListEligible(gomock.Any(), 5).Return(nil, nil)

	stats, err := s.newService().ProcessBatch(context.Background())
	s.Require().NoError(err)
	s.Equal(3, stats.Released)
	s.Equal(0, stats.Selected)
}
