package gcal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrorfinish/detailing-platform/internal/booking"
)

func TestNewWithoutCredentialsDisablesIntegration(t *testing.T) {
	client, err := New(context.Background(), "", "primary", nil)
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestEventForBuildsTimedEvent(t *testing.T) {
	b := &booking.Booking{
		PackageName:   "Full Detail",
		CustomerName:  "Jordan Smith",
		CustomerEmail: "jordan@example.com",
		CustomerPhone: "555-010-2030",
		VehicleModel:  "Honda Civic",
		VehicleSize:   "sedan",
		Notes:         "gate code 4411",
		Date:          "2026-09-05",
		Time:          "09:00",
	}

	event, err := eventFor(b)
	require.NoError(t, err)

	assert.Equal(t, "Full Detail - Jordan Smith", event.Summary)
	assert.Equal(t, "2026-09-05T09:00:00", event.Start.DateTime)
	// 210-minute service ends at 12:30.
	assert.Equal(t, "2026-09-05T12:30:00", event.End.DateTime)
	assert.Contains(t, event.Description, "jordan@example.com")
	assert.Contains(t, event.Description, "gate code 4411")
}

func TestEventForRejectsMalformedTime(t *testing.T) {
	_, err := eventFor(&booking.Booking{Date: "2026-09-05", Time: "9am"})
	require.Error(t, err)
}
