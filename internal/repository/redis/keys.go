package redisrepo

import "fmt"

const ns = "aerogo:v1"

func KeyFlightDetail(flightID int64) string {
	return fmt.Sprintf("%s:flight:%d:detail", ns, flightID)
}

func KeyFlightAvailability(flightID int64) string {
	return fmt.Sprintf("%s:flight:%d:availability", ns, flightID)
}

func KeyFlightSeats(flightID int64) string {
	return fmt.Sprintf("%s:flight:%d:seats", ns, flightID)
}
