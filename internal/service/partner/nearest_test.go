package partner_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"service-partner/internal/apperr"
	"service-partner/internal/domain"
	"service-partner/internal/metrics"
	"service-partner/internal/service/partner"
	"service-partner/internal/testutil/fixture"
)

func newCtrl(t *testing.T) *gomock.Controller {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return ctrl
}

func TestResolver_SingleCandidate(t *testing.T) {
	t.Parallel()

	finder := NewMockContainmentFinder(newCtrl(t))
	finder.EXPECT().
		FindContaining(gomock.Any(), fixture.RioPoint).
		Return([]domain.Partner{fixture.Rio()}, nil)

	lookups := metrics.NewNearestLookups()
	r := partner.NewResolver(finder, lookups, time.Second)

	got, err := r.Nearest(context.Background(), fixture.RioPoint)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "1", got.ID)
	require.Equal(t, float64(1), testutil.ToFloat64(lookups.Outcome(metrics.ResultMatch)))
}

func TestResolver_NoCandidates(t *testing.T) {
	t.Parallel()

	finder := NewMockContainmentFinder(newCtrl(t))
	finder.EXPECT().
		FindContaining(gomock.Any(), fixture.AcrePoint).
		Return(nil, nil)

	lookups := metrics.NewNearestLookups()
	r := partner.NewResolver(finder, lookups, time.Second)

	got, err := r.Nearest(context.Background(), fixture.AcrePoint)
	require.NoError(t, err)
	require.Nil(t, got)
	require.Equal(t, float64(1), testutil.ToFloat64(lookups.Outcome(metrics.ResultNoMatch)))
}

func TestResolver_PicksClosestAddress(t *testing.T) {
	t.Parallel()

	finder := NewMockContainmentFinder(newCtrl(t))
	finder.EXPECT().
		FindContaining(gomock.Any(), fixture.SaoPauloPoint).
		Return(fixture.SaoPaulo(), nil)

	r := partner.NewResolver(finder, nil, time.Second)

	got, err := r.Nearest(context.Background(), fixture.SaoPauloPoint)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "29", got.ID)
}

func TestResolver_CandidateOrderDoesNotMatter(t *testing.T) {
	t.Parallel()

	sp := fixture.SaoPaulo()
	reversed := []domain.Partner{sp[2], sp[1], sp[0]}

	finder := NewMockContainmentFinder(newCtrl(t))
	finder.EXPECT().FindContaining(gomock.Any(), gomock.Any()).Return(reversed, nil)

	got, err := partner.NewResolver(finder, nil, time.Second).Nearest(context.Background(), fixture.SaoPauloPoint)
	require.NoError(t, err)
	require.Equal(t, "29", got.ID)
}

func TestResolver_TieBrokenBySmallerID(t *testing.T) {
	t.Parallel()

	area := domain.Polygon{fixture.Box(0, 0, 2, 2)}
	b := fixture.Partner("b", "doc-b", area, 1.5, 1.5)
	a := fixture.Partner("a", "doc-a", area, 1.5, 1.5)
	c := fixture.Partner("c", "doc-c", area, 0.5, 0.5)

	for _, order := range [][]domain.Partner{{b, a, c}, {a, b, c}, {c, b, a}} {
		finder := NewMockContainmentFinder(newCtrl(t))
		finder.EXPECT().FindContaining(gomock.Any(), gomock.Any()).Return(order, nil)

		got, err := partner.NewResolver(finder, nil, time.Second).Nearest(context.Background(), domain.NewPosition(1.6, 1.6))
		require.NoError(t, err)
		require.Equal(t, "a", got.ID)
	}
}

func TestResolver_OutOfRangeRejectedBeforeQuery(t *testing.T) {
	t.Parallel()

	// no EXPECT: the registry must not be queried
	finder := NewMockContainmentFinder(newCtrl(t))
	lookups := metrics.NewNearestLookups()

	got, err := partner.NewResolver(finder, lookups, time.Second).Nearest(context.Background(), fixture.OutOfRangePt)
	require.Nil(t, got)
	require.ErrorIs(t, err, apperr.ErrOutOfRangeCoordinate)
	require.Equal(t, float64(1), testutil.ToFloat64(lookups.Outcome(metrics.ResultInvalid)))
}

func TestResolver_RegistryErrorPropagates(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("store down")
	finder := NewMockContainmentFinder(newCtrl(t))
	finder.EXPECT().FindContaining(gomock.Any(), gomock.Any()).Return(nil, wantErr)

	lookups := metrics.NewNearestLookups()
	_, err := partner.NewResolver(finder, lookups, time.Second).Nearest(context.Background(), fixture.RioPoint)
	require.ErrorIs(t, err, wantErr)
	require.Equal(t, float64(1), testutil.ToFloat64(lookups.Outcome(metrics.ResultError)))
}

func TestResolver_QueryErrorCountedAsInvalid(t *testing.T) {
	t.Parallel()

	finder := NewMockContainmentFinder(newCtrl(t))
	finder.EXPECT().FindContaining(gomock.Any(), gomock.Any()).Return(nil, &apperr.QueryError{Detail: "rejected"})

	lookups := metrics.NewNearestLookups()
	_, err := partner.NewResolver(finder, lookups, time.Second).Nearest(context.Background(), fixture.RioPoint)
	require.ErrorIs(t, err, apperr.ErrInvalidQuery)
	require.Equal(t, float64(1), testutil.ToFloat64(lookups.Outcome(metrics.ResultInvalid)))
}

func TestResolver_AppliesDeadline(t *testing.T) {
	t.Parallel()

	finder := NewMockContainmentFinder(newCtrl(t))
	finder.EXPECT().FindContaining(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ domain.Position) ([]domain.Partner, error) {
			_, ok := ctx.Deadline()
			require.True(t, ok, "expected a deadline on the registry context")
			return nil, nil
		})

	_, err := partner.NewResolver(finder, nil, 0).Nearest(context.Background(), fixture.RioPoint)
	require.NoError(t, err)
}
