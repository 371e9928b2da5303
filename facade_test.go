package cloudschedule_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	cloudschedule "github.com/jdziat/cloud-schedule"
)

func setupTestStorage(t *testing.T) *cloudschedule.GormStorage {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	store := cloudschedule.NewGormStorage(db)
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestFacade_BuildAndEvaluate(t *testing.T) {
	from := uint32(time.Date(2026, 1, 5, 18, 0, 0, 0, time.UTC).Unix())

	d, err := cloudschedule.WeeklyOn(from, 0, 4*3600, time.Monday)
	require.NoError(t, err)

	s := cloudschedule.NewSchedule("porch", d,
		cloudschedule.WithScheduleClock(cloudschedule.FixedClock(from+7*86400+60)))
	assert.True(t, s.IsActive())
	assert.True(t, cloudschedule.IsActive(d, from+7*86400+60))
	assert.False(t, cloudschedule.IsActive(d, from+86400+60), "tuesday")

	assert.Equal(t, cloudschedule.Weekly{Days: 1 << time.Monday}, cloudschedule.Decode(d.Mask))
	assert.Equal(t, d.Mask, cloudschedule.Encode(s.Recurrence()))
}

func TestFacade_BuilderErrors(t *testing.T) {
	_, err := cloudschedule.Every(0, 0, 1, cloudschedule.Minutes, 0)
	assert.ErrorIs(t, err, cloudschedule.ErrZeroRepetition)

	_, err = cloudschedule.MonthlyOn(0, 0, 1, 32)
	assert.ErrorIs(t, err, cloudschedule.ErrInvalidDay)

	_, err = cloudschedule.YearlyOn(0, 0, 1, 0, 1)
	assert.ErrorIs(t, err, cloudschedule.ErrInvalidMonth)

	_, err = cloudschedule.Once(10, 5)
	assert.NoError(t, err)

	assert.ErrorIs(t, cloudschedule.ValidatePropertyName("has space"), cloudschedule.ErrInvalidPropertyName)
}

func TestFacade_DeviceToCloudRoundTrip(t *testing.T) {
	ctx := context.Background()

	// The "cloud" forwards every push from the device to a second monitor.
	var mu sync.Mutex
	var forwarded [][]byte
	device := cloudschedule.NewMonitor(
		cloudschedule.WithClock(cloudschedule.FixedClock(1)),
		cloudschedule.WithStorage(setupTestStorage(t)),
		cloudschedule.WithTransport(cloudschedule.TransportFunc(func(_ context.Context, _ string, payload []byte) error {
			mu.Lock()
			defer mu.Unlock()
			forwarded = append(forwarded, payload)
			return nil
		})),
	)
	peer := cloudschedule.NewMonitor(cloudschedule.WithPolicy(cloudschedule.CloudWins))

	require.NoError(t, device.Register(cloudschedule.NewSchedule("porch", cloudschedule.Descriptor{})))
	require.NoError(t, peer.Register(cloudschedule.NewSchedule("porch", cloudschedule.Descriptor{})))

	want, err := cloudschedule.Every(100, 0, 30, cloudschedule.Hours, 2)
	require.NoError(t, err)
	require.NoError(t, device.Set("porch", want))
	require.NoError(t, device.Tick(ctx))

	require.Len(t, forwarded, 1)
	require.NoError(t, peer.Receive(ctx, "porch", forwarded[0], time.Now()))

	got, err := peer.Descriptor("porch")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFacade_PermanentTransportError(t *testing.T) {
	calls := 0
	m := cloudschedule.NewMonitor(
		cloudschedule.WithClock(cloudschedule.FixedClock(1)),
		cloudschedule.WithRetry(cloudschedule.DefaultRetryConfig()),
		cloudschedule.WithTransport(cloudschedule.TransportFunc(func(context.Context, string, []byte) error {
			calls++
			return cloudschedule.Permanent(errors.New("forbidden"))
		})),
	)
	require.NoError(t, m.Register(cloudschedule.NewSchedule("porch", cloudschedule.Descriptor{})))
	require.NoError(t, m.Set("porch", cloudschedule.Descriptor{From: 5}))

	err := m.Tick(context.Background())

	var syncErr *cloudschedule.SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, "porch", syncErr.Name)
	assert.Equal(t, 1, calls)
}

func TestFacade_ParsePolicy(t *testing.T) {
	p, err := cloudschedule.ParsePolicy("device")
	require.NoError(t, err)
	assert.Equal(t, cloudschedule.DeviceWins, p)
}
