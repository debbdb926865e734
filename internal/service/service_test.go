package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/mock/gomock"

	"catalog_writer/internal/domain"
)

func (s *ServiceTestSuite) TestRequeue() {
	s.items.EXPECT().Requeue(gomock.Any(), domain.KindProduct, "101", RequeuePriority).Return(nil)

	s.NoError(s.newService().Requeue(context.Background(), domain.KindProduct, "101"))
}

func (s *ServiceTestSuite) TestRequeue_Unknown() {
	s.items.EXPECT().Requeue(gomock.Any(), domain.KindProduct, "999", RequeuePriority).Return(domain.ErrNotFound)

	err := s.newService().Requeue(context.Background(), domain.KindProduct, "999")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *ServiceTestSuite) TestHistory() {
	s.items.EXPECT().Get(gomock.Any(), domain.KindCollection, "7").Return(&domain.CatalogItem{ID: 1}, nil)
	s.contents.EXPECT().ListByItem(gomock.Any(), domain.KindCollection, "7", historyLimit).Return([]domain.GeneratedContent{
		{ID: 2, Title: "Newer"},
		{ID: 1, Title: "Older"},
	}, nil)

	rows, err := s.newService().History(context.Background(), domain.KindCollection, "7")
	s.Require().NoError(err)
	s.Len(rows, 2)
	s.Equal("Newer", rows[0].Title)
}

func (s *ServiceTestSuite) TestHistory_UnknownItem() {
	s.items.EXPECT().Get(gomock.Any(), domain.KindProduct, "404").Return(nil, domain.ErrNotFound)

	_, err := s.newService().History(context.Background(), domain.KindProduct, "404")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *ServiceTestSuite) TestStats() {
	s.state.EXPECT().Get(gomock.Any()).Return(&domain.SystemState{IsPaused: true, AutoPauseTriggered: true}, nil)
	s.items.EXPECT().CountByStatus(gomock.Any()).Return([]domain.StatusCount{
		{Kind: domain.KindProduct, Status: domain.StatusPending, Count: 4},
		{Kind: domain.KindProduct, Status: domain.StatusCompleted, Count: 10},
		{Kind: domain.KindCollection, Status: domain.StatusPending, Count: 2},
		{Kind: domain.KindCollection, Status: domain.StatusAbandoned, Count: 1},
	}, nil)

	// 01:30 in UTC+3 is still the previous UTC day.
	local := time.FixedZone("UTC+3", 3*60*60)
	s.items.EXPECT().CountSince(gomock.Any(), time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)).
		Return(&domain.DailyCounts{Created: 6, Processed: 3}, nil)

	svc := s.newService()
	svc.now = func() time.Time { return time.Date(2024, 5, 2, 1, 30, 0, 0, local) }

	stats, err := svc.Stats(context.Background())
	s.Require().NoError(err)
	s.True(stats.State.IsPaused)
	s.True(stats.State.AutoPauseTriggered)
	s.Equal(17, stats.Total)
	s.Len(stats.Counts, 4)
	s.Equal(6, stats.InQueue)
	s.Equal(6, stats.NewToday)
	s.Equal(3, stats.ProcessedToday)
	s.Equal(58.8, stats.CompletionRate)
}

func (s *ServiceTestSuite) TestStats_EmptyMirror() {
	s.state.EXPECT().Get(gomock.Any()).Return(&domain.SystemState{}, nil)
	s.items.EXPECT().CountByStatus(gomock.Any()).Return(nil, nil)
	s.items.EXPECT().CountSince(gomock.Any(), gomock.Any()).Return(&domain.DailyCounts{}, nil)

	stats, err := s.newService().Stats(context.Background())
	s.Require().NoError(err)
	s.NotNil(stats.Counts)
	s.Zero(stats.Total)
	s.Zero(stats.CompletionRate)
	s.Zero(stats.NewToday)
}

func (s *ServiceTestSuite) TestStats_DailyCountError() {
	s.state.EXPECT().Get(gomock.Any()).Return(&domain.SystemState{}, nil)
	s.items.EXPECT().CountByStatus(gomock.Any()).Return(nil, nil)
	s.items.EXPECT().CountSince(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))

	_, err := s.newService().Stats(context.Background())
	s.ErrorContains(err, "count items since midnight")
}

func (s *ServiceTestSuite) TestItems_ClampsPaging() {
	s.items.EXPECT().List(gomock.Any(), domain.ItemFilter{Status: domain.StatusFailed, Limit: defaultListLimit}).Return(nil, nil)
	s.items.EXPECT().List(gomock.Any(), domain.ItemFilter{Limit: maxListLimit, Offset: 0}).Return(nil, nil)

	svc := s.newService()
	_, err := svc.Items(context.Background(), domain.ItemFilter{Status: domain.StatusFailed})
	s.Require().NoError(err)
	_, err = svc.Items(context.Background(), domain.ItemFilter{Limit: 10_000, Offset: -3})
	s.Require().NoError(err)
}

func (s *ServiceTestSuite) TestPauseAndUnpause() {
	gomock.InOrder(
		s.state.EXPECT().SetPaused(gomock.Any(), true).Return(nil),
		s.state.EXPECT().SetPaused(gomock.Any(), false).Return(nil),
	)

	svc := s.newService()
	s.NoError(svc.Pause(context.Background()))
	s.NoError(svc.Unpause(context.Background()))
}

func (s *ServiceTestSuite) TestPause_StoreError() {
	s.state.EXPECT().SetPaused(gomock.Any(), true).Return(errors.New("connection refused"))

	s.Error(s.newService().Pause(context.Background()))
}
