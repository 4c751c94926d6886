package tools

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// timeSlots are the fixed visit windows technicians are booked into.
var timeSlots = []string{"08:00-10:00", "10:00-12:00", "12:00-14:00", "14:00-16:00"}

// scheduleTechnician books a technician visit. The booking is simulated: a
// real deployment would call a scheduling system here.
func scheduleTechnician(ctx context.Context, args map[string]any) (ToolResult, error) {
	reason := stringArg(args, "reason")
	if reason == "" {
		return Failure("reason is required"), nil
	}

	scheduledDate := stringArg(args, "preferred_date")
	if scheduledDate == "" {
		// 2-4 days out.
		daysAhead := 2 + rand.IntN(3)
		scheduledDate = time.Now().AddDate(0, 0, daysAhead).Format("02/01/2006")
	}

	scheduledTime := timeSlots[rand.IntN(len(timeSlots))]
	confirmation := fmt.Sprintf("TEC-%05d", 10000+rand.IntN(90000))

	return ToolResult{
		Success: true,
		Message: fmt.Sprintf("טכנאי נקבע לתאריך %s בין השעות %s. מספר אישור: %s", scheduledDate, scheduledTime, confirmation),
		Data: map[string]any{
			"confirmation_number": confirmation,
			"scheduled_date":      scheduledDate,
			"scheduled_time":      scheduledTime,
			"reason":              reason,
		},
	}, nil
}
