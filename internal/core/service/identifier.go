package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/reachskyline/crm-api/internal/core/domain"
	"github.com/reachskyline/crm-api/internal/core/ports"
)

const firstClientID = "C001"

var clientNumberPattern = regexp.MustCompile(`C(\d+)`)

// IDGenerator mints client identifiers and activity codes.
type IDGenerator struct {
	repo ports.ClientRepository
	now  func() time.Time
}

func NewIDGenerator(repo ports.ClientRepository, now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{repo: repo, now: now}
}

// NextClientID returns the identifier following the greatest existing one.
func (g *IDGenerator) NextClientID(ctx context.Context) (string, error) {
	last, err := g.repo.LastClientID(ctx)
	if err != nil {
		return "", fmt.Errorf("next client id: %w", err)
	}
	return nextClientID(last), nil
}

// ActivityCode builds the code for one service slot of a client in the
// current month.
func (g *IDGenerator) ActivityCode(clientID, service string, sequence int) string {
	return activityCode(g.now(), clientID, service, sequence)
}

// nextClientID increments the number in last. An empty or unparseable last
// identifier restarts at C001, even if other identifiers would parse.
func nextClientID(last string) string {
	m := clientNumberPattern.FindStringSubmatch(last)
	if m == nil {
		return firstClientID
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return firstClientID
	}
	return fmt.Sprintf("C%03d", n+1)
}

// activityCode concatenates, without separators: last digit of the year,
// unpadded month, client number, service type code, sequence.
func activityCode(at time.Time, clientID, service string, sequence int) string {
	year := strconv.Itoa(at.Year())
	return year[len(year)-1:] +
		strconv.Itoa(int(at.Month())) +
		clientNumber(clientID) +
		domain.TypeCode(service) +
		strconv.Itoa(sequence)
}

// clientNumber is the numeric value of clientID's suffix ("C012" -> "12"),
// "0" when there is none.
func clientNumber(clientID string) string {
	m := clientNumberPattern.FindStringSubmatch(clientID)
	if m == nil {
		return "0"
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return m[1]
	}
	return strconv.Itoa(n)
}
