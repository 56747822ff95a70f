package testutils

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	eventdb "github.com/artifa-fest/registration/app/modules/event/infrastructure/repositories"
	registrationdb "github.com/artifa-fest/registration/app/modules/registration/infrastructure/repositories"
)

// TestDataGenerator provides methods to create test data for integration
// tests.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a new test data generator with optional seed.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

var departments = []string{"CSE", "IT", "ECE", "EEE", "MECH", "AIDS"}

// GenerateRegisterNumber produces a plausible college register number,
// e.g. "21CSE042".
func (g *TestDataGenerator) GenerateRegisterNumber() string {
	dept := departments[g.faker.Number(0, len(departments)-1)]
	return fmt.Sprintf("2%d%s%s", g.faker.Number(1, 4), dept, g.faker.Numerify("###"))
}

// GenerateEvent creates a catalog entry of the given type.
func (g *TestDataGenerator) GenerateEvent(eventType eventdb.EventType, isTeamEvent bool) *eventdb.Event {
	name := fmt.Sprintf("%s %s", g.faker.HackerAdjective(), g.faker.HackerNoun())
	event := &eventdb.Event{
		Name:        name,
		Slug:        strings.ReplaceAll(strings.ToLower(name), " ", "-") + "-" + g.faker.Numerify("###"),
		Description: g.faker.Sentence(8),
		EventType:   eventType,
		MinTeamSize: 1,
		MaxTeamSize: 1,
	}
	if isTeamEvent {
		event.IsTeamEvent = true
		event.MinTeamSize = 2
		event.MaxTeamSize = 4
	}
	return event
}

// GenerateRegistration creates a registration row for the given event.
func (g *TestDataGenerator) GenerateRegistration(event *eventdb.Event) *registrationdb.Registration {
	number := g.GenerateRegisterNumber()
	return &registrationdb.Registration{
		RegisterNumber: number,
		FullName:       g.faker.Name(),
		Year:           fmt.Sprintf("%d", g.faker.Number(1, 4)),
		Department:     departments[g.faker.Number(0, len(departments)-1)],
		PhoneNumber:    g.faker.Numerify("9#########"),
		Email:          strings.ToLower(number) + "@example.edu",
		EventID:        event.ID,
	}
}
