package notification

import (
	"strings"
	"testing"
	"time"

	"restaurant-pos/internal/models"
)

func TestFormatNotification(t *testing.T) {
	ts := time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		msg  models.StatusUpdateMessage
		want []string
	}{
		{
			name: "completed order",
			msg: models.StatusUpdateMessage{
				OrderID:   7,
				OldStatus: models.OrderPending,
				NewStatus: models.OrderCompleted,
				ChangedBy: "pos-service",
				Timestamp: ts,
			},
			want: []string{"Order #7", "paid and completed"},
		},
		{
			name: "cancelled with reason",
			msg: models.StatusUpdateMessage{
				OrderID:   8,
				OldStatus: models.OrderPending,
				NewStatus: models.OrderCancelled,
				ChangedBy: "pos-service",
				Reason:    "out of stock",
				Timestamp: ts,
			},
			want: []string{"Order #8", "cancelled", "out of stock"},
		},
		{
			name: "cancelled without reason",
			msg: models.StatusUpdateMessage{
				OrderID:   9,
				NewStatus: models.OrderCancelled,
				Timestamp: ts,
			},
			want: []string{"Order #9", "cancelled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := formatNotification(&tt.msg)
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("notification %q missing %q", out, want)
				}
			}
			if !strings.Contains(out, "2026-03-14 12:30:00") {
				t.Errorf("notification %q missing timestamp", out)
			}
		})
	}
}
