package natsadapter

import (
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

// Subject layout: carbon.<entity>.<event>.<session id>.
const (
	subjectPolygonFinalized = "carbon.polygon.finalized."
	subjectPolygonsCleared  = "carbon.polygon.cleared."
	subjectPlanReady        = "carbon.plan.ready."
)

// Streams created by NewPublisher.
var streams = []nats.StreamConfig{
	{
		Name:      "CARBON_POLYGONS",
		Subjects:  []string{"carbon.polygon.>"},
		Retention: nats.LimitsPolicy,
		MaxAge:    24 * time.Hour,
		Storage:   nats.FileStorage,
	},
	{
		Name:      "CARBON_PLANS",
		Subjects:  []string{"carbon.plan.>"},
		Retention: nats.LimitsPolicy,
		MaxAge:    7 * 24 * time.Hour,
		Storage:   nats.FileStorage,
	},
}

// PolygonFinalizedSubject is where finished boundaries of a session go.
func PolygonFinalizedSubject(sessionID string) string {
	return subjectPolygonFinalized + token(sessionID)
}

// PolygonsClearedSubject is where a session's clear events go.
func PolygonsClearedSubject(sessionID string) string {
	return subjectPolygonsCleared + token(sessionID)
}

// PlanReadySubject is where planting plans for a session go.
func PlanReadySubject(sessionID string) string {
	return subjectPlanReady + token(sessionID)
}

// SessionSubjects lists every subject carrying events for one session.
func SessionSubjects(sessionID string) []string {
	return []string{
		PolygonFinalizedSubject(sessionID),
		PolygonsClearedSubject(sessionID),
		PlanReadySubject(sessionID),
	}
}

// SessionWildcard matches every event subject of one session.
func SessionWildcard(sessionID string) string {
	return "carbon.*.*." + token(sessionID)
}

// token keeps a session id to a single subject token.
func token(s string) string {
	if s == "" {
		return "_"
	}
	return strings.NewReplacer(".", "_", "*", "_", ">", "_", " ", "_").Replace(s)
}
