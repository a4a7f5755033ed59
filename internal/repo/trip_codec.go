package repo

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/trip-planner/internal/dates"
	"github.com/pkordes/trip-planner/internal/domain"
)

// Trip file records. Each trip is written as one TRIP line, its ACC and ACT
// lines, then END. Fields are separated by '|' and are not escaped, so values
// must not contain '|'.
const (
	recTrip = "TRIP"
	recAcc  = "ACC"
	recAct  = "ACT"
	recEnd  = "END"

	// emptyTripsSentinel is written instead of an empty file.
	emptyTripsSentinel = "No trips saved yet."

	tripFields = 8
	accFields  = 7
	actFields  = 6
)

// encodeTrips writes trips in the block format.
func encodeTrips(w io.Writer, trips []domain.Trip) error {
	bw := bufio.NewWriter(w)
	if len(trips) == 0 {
		fmt.Fprintln(bw, emptyTripsSentinel)
		return bw.Flush()
	}

	for _, t := range trips {
		fmt.Fprintln(bw, strings.Join([]string{
			recTrip, t.Name, t.Destination, t.TravelStyle,
			dates.Format(t.Start), dates.Format(t.End),
			strconv.Itoa(t.Duration), formatCreated(t.Created),
		}, "|"))
		for _, a := range t.Accommodations {
			fmt.Fprintln(bw, strings.Join([]string{
				recAcc, a.Type, a.Name, a.Address,
				dates.Format(a.CheckIn), dates.Format(a.CheckOut), a.Confirmation,
			}, "|"))
		}
		for _, a := range t.Activities {
			fmt.Fprintln(bw, strings.Join([]string{
				recAct, a.Description, dates.Format(a.Date), a.Time, a.Location, a.Notes,
			}, "|"))
		}
		fmt.Fprintln(bw, recEnd)
	}
	return bw.Flush()
}

// decodeTrips parses the block format. Blank lines and the empty-store
// sentinel are skipped, fields beyond the expected count are ignored, and a
// final block without END is kept. Any other irregularity is an error that
// names the offending line.
func decodeTrips(b []byte) ([]domain.Trip, error) {
	var (
		trips   []domain.Trip
		current *domain.Trip
	)
	flush := func() {
		if current != nil {
			trips = append(trips, *current)
			current = nil
		}
	}

	sc := bufio.NewScanner(bytes.NewReader(b))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		// Only leading space is dropped; trailing space belongs to the last field.
		line := strings.TrimLeft(sc.Text(), " \t")
		if t := strings.TrimSpace(line); t == "" || t == emptyTripsSentinel {
			continue
		}

		parts := strings.Split(line, "|")
		switch strings.TrimSpace(parts[0]) {
		case recTrip:
			if len(parts) < tripFields {
				return nil, lineErr(lineNo, "TRIP record has %d fields, want %d", len(parts), tripFields)
			}
			t, err := parseTrip(parts)
			if err != nil {
				return nil, lineErr(lineNo, "%v", err)
			}
			flush()
			current = &t

		case recAcc:
			if current == nil {
				return nil, lineErr(lineNo, "ACC record outside a TRIP block")
			}
			if len(parts) < accFields {
				return nil, lineErr(lineNo, "ACC record has %d fields, want %d", len(parts), accFields)
			}
			a, err := parseAccommodation(parts)
			if err != nil {
				return nil, lineErr(lineNo, "%v", err)
			}
			current.Accommodations = append(current.Accommodations, a)

		case recAct:
			if current == nil {
				return nil, lineErr(lineNo, "ACT record outside a TRIP block")
			}
			if len(parts) < actFields {
				return nil, lineErr(lineNo, "ACT record has %d fields, want %d", len(parts), actFields)
			}
			a, err := parseActivity(parts)
			if err != nil {
				return nil, lineErr(lineNo, "%v", err)
			}
			current.Activities = append(current.Activities, a)

		case recEnd:
			flush()

		default:
			return nil, lineErr(lineNo, "unknown record %q", parts[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return trips, nil
}

func parseTrip(p []string) (domain.Trip, error) {
	start, err := dates.Parse(p[4])
	if err != nil {
		return domain.Trip{}, fmt.Errorf("start date: %w", err)
	}
	end, err := dates.Parse(p[5])
	if err != nil {
		return domain.Trip{}, fmt.Errorf("end date: %w", err)
	}
	duration, err := strconv.Atoi(p[6])
	if err != nil {
		return domain.Trip{}, fmt.Errorf("duration: %w", err)
	}
	created, err := parseCreated(p[7])
	if err != nil {
		return domain.Trip{}, fmt.Errorf("created: %w", err)
	}
	return domain.Trip{
		Name:        p[1],
		Destination: p[2],
		TravelStyle: p[3],
		Start:       start,
		End:         end,
		Duration:    duration,
		Created:     created,
	}, nil
}

func parseAccommodation(p []string) (domain.Accommodation, error) {
	checkIn, err := parseOptionalDate(p[4])
	if err != nil {
		return domain.Accommodation{}, fmt.Errorf("check-in: %w", err)
	}
	checkOut, err := parseOptionalDate(p[5])
	if err != nil {
		return domain.Accommodation{}, fmt.Errorf("check-out: %w", err)
	}
	return domain.Accommodation{
		Type:         p[1],
		Name:         p[2],
		Address:      p[3],
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		Confirmation: p[6],
	}, nil
}

func parseActivity(p []string) (domain.Activity, error) {
	date, err := parseOptionalDate(p[2])
	if err != nil {
		return domain.Activity{}, fmt.Errorf("date: %w", err)
	}
	return domain.Activity{
		Description: p[1],
		Date:        date,
		Time:        p[3],
		Location:    p[4],
		Notes:       p[5],
	}, nil
}

// parseOptionalDate accepts "" as the zero time.
func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return dates.Parse(s)
}

func parseCreated(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dates.Timestamp, s)
}

func formatCreated(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dates.Timestamp)
}

func lineErr(n int, format string, args ...any) error {
	return fmt.Errorf("line %d: "+format, append([]any{n}, args...)...)
}
