package service

import (
	"context"
	"testing"
	"time"

	"github.com/diegoclair/vigil-bot/internal/domain/contest"
	"github.com/diegoclair/vigil-bot/internal/domain/contract"
	"github.com/diegoclair/vigil-bot/mocks"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type allMocks struct {
	mockDataManager *mocks.MockDataManager
	mockGroupRepo   *mocks.MockGroupRepo
	mockMemberRepo  *mocks.MockMemberRepo
	mockRosterRepo  *mocks.MockRosterRepo
	mockSlackClient *mocks.MockSlackClient
	mockPublisher   *mocks.MockPublisher
	clock           *clockwork.FakeClock
}

// testNow is 05:30 in Shanghai, before the default deadline
var testNow = time.Date(2024, 3, 9, 21, 30, 0, 0, time.UTC)

func testOptions(clock clockwork.Clock) Options {
	return Options{
		Admins: []string{"UADMIN"},
		Defaults: GroupDefaults{
			Timezone:        "Asia/Shanghai",
			TitleTemplate:   "Vigil {edition} - day {day}",
			BroadcastStatus: true,
			BroadcastWinner: true,
			Contest:         contest.DefaultConfig(),
		},
		TickWorkers: 2,
		Clock:       clock,
	}
}

func newServiceTestMock(t *testing.T) (m allMocks, instance *Instance, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)

	dm := mocks.NewMockDataManager(ctrl)

	groupRepo := mocks.NewMockGroupRepo(ctrl)
	dm.EXPECT().Group().Return(groupRepo).AnyTimes()

	memberRepo := mocks.NewMockMemberRepo(ctrl)
	dm.EXPECT().Member().Return(memberRepo).AnyTimes()

	rosterRepo := mocks.NewMockRosterRepo(ctrl)
	dm.EXPECT().Roster().Return(rosterRepo).AnyTimes()

	slackClient := mocks.NewMockSlackClient(ctrl)
	publisher := mocks.NewMockPublisher(ctrl)

	m = allMocks{
		mockDataManager: dm,
		mockGroupRepo:   groupRepo,
		mockMemberRepo:  memberRepo,
		mockRosterRepo:  rosterRepo,
		mockSlackClient: slackClient,
		mockPublisher:   publisher,
		clock:           clockwork.NewFakeClockAt(testNow),
	}

	// validate service creation
	instance = NewInstance(dm, slackClient, publisher, testOptions(m.clock))
	require.NotNil(t, instance.Vigil)
	require.NotNil(t, instance.Scheduler)

	return
}

// expectTransaction runs transactions against the same mocks
func (m allMocks) expectTransaction() *gomock.Call {
	return m.mockDataManager.EXPECT().
		WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(dm contract.DataManager) error) error {
			return fn(m.mockDataManager)
		})
}
