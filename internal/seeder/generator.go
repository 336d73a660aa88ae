package seeder

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// Record is a raw heartbeat as it would arrive on the wire. Fields are
// pointers so malformed variants can omit or null them.
type Record map[string]interface{}

// Generator produces heartbeat batches from a scenario. A fixed rand
// source keeps generated batches reproducible for a given seed.
type Generator struct {
	scenario *Scenario
	rng      *rand.Rand
}

func NewGenerator(scenario *Scenario, seed int64) *Generator {
	gofakeit.Seed(seed)
	return &Generator{
		scenario: scenario,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// RandomScenario builds a scenario with fake service names, one of which
// suffers an outage long enough to trip detection at default settings.
func RandomScenario(services, beats int) *Scenario {
	if services < 1 {
		services = 3
	}
	if beats < 8 {
		beats = 20
	}

	s := &Scenario{
		Interval: Duration(time.Minute),
		Beats:    beats,
	}
	for i := 0; i < services; i++ {
		svc := ServiceScenario{Name: fakeServiceName()}
		if i == 0 {
			// Guarantee at least one detectable gap
			svc.Outages = []OutageRange{{From: beats / 2, To: beats/2 + 5}}
		}
		s.Services = append(s.Services, svc)
	}
	return s
}

func fakeServiceName() string {
	name := fmt.Sprintf("%s-%s", gofakeit.Word(), gofakeit.Word())
	return strings.ToLower(name)
}

// Generate renders the scenario into raw records, outages and malformed
// entries included.
func (g *Generator) Generate() []Record {
	records := make([]Record, 0, g.scenario.Beats*len(g.scenario.Services))

	for _, svc := range g.scenario.Services {
		for beat := 0; beat < g.scenario.Beats; beat++ {
			if inOutage(svc.Outages, beat) {
				continue
			}

			ts := g.scenario.Start.Add(time.Duration(beat) * g.scenario.Interval.Std())
			if svc.Jitter > 0 {
				offset := time.Duration(g.rng.Int63n(int64(svc.Jitter.Std()*2))) - svc.Jitter.Std()
				ts = ts.Add(offset)
			}

			if g.scenario.MalformedRate > 0 && g.rng.Float64() < g.scenario.MalformedRate {
				records = append(records, g.malformedRecord(svc.Name, ts))
				continue
			}

			records = append(records, Record{
				"service":   svc.Name,
				"timestamp": ts.UTC().Format(time.RFC3339),
			})
		}
	}

	if g.scenario.Shuffle {
		g.rng.Shuffle(len(records), func(i, j int) {
			records[i], records[j] = records[j], records[i]
		})
	}
	return records
}

func inOutage(outages []OutageRange, beat int) bool {
	for _, o := range outages {
		if beat >= o.From && beat < o.To {
			return true
		}
	}
	return false
}

// malformedRecord picks one of the rejection shapes the validator is
// expected to catch.
func (g *Generator) malformedRecord(service string, ts time.Time) Record {
	stamp := ts.UTC().Format(time.RFC3339)
	variants := []Record{
		{"timestamp": stamp},
		{"service": service},
		{"service": "", "timestamp": stamp},
		{"service": service, "timestamp": ""},
		{"service": service, "timestamp": "not-a-time"},
		{"service": service + "!!", "timestamp": stamp},
	}
	return variants[g.rng.Intn(len(variants))]
}
