package report

import (
	"math"
	"sort"

	"github.com/ternarybob/brevis/internal/models"
)

// Aggregate groups meetings by team member and computes per-member and
// team-wide statistics. Pure function of its input: meetings are copied into
// the dataset, the caller's slice is not reordered.
func Aggregate(meetings []models.Meeting, qualifiedThreshold int) *models.Dataset {
	dataset := &models.Dataset{
		TotalMeetings: len(meetings),
		Members:       make(map[string]*models.MemberStats),
		Meetings:      make([]models.Meeting, len(meetings)),
	}
	copy(dataset.Meetings, meetings)

	total := 0
	for _, meeting := range meetings {
		stats, ok := dataset.Members[meeting.TeamMember]
		if !ok {
			stats = &models.MemberStats{Name: meeting.TeamMember}
			dataset.Members[meeting.TeamMember] = stats
		}
		stats.Meetings = append(stats.Meetings, meeting)
		stats.Total += meeting.Score
		stats.Count++

		total += meeting.Score
		if meeting.Score >= qualifiedThreshold {
			dataset.QualifiedCount++
		}
	}

	for _, stats := range dataset.Members {
		if stats.Count > 0 {
			stats.Average = round1(float64(stats.Total) / float64(stats.Count))
		}
	}

	if len(meetings) > 0 {
		dataset.AverageScore = round1(float64(total) / float64(len(meetings)))
	}

	// Best meetings first; stable so equal scores keep input order
	sort.SliceStable(dataset.Meetings, func(i, j int) bool {
		return dataset.Meetings[i].Score > dataset.Meetings[j].Score
	})

	return dataset
}

// MembersByAverage returns member stats sorted by average descending,
// ties broken by name for deterministic output.
func MembersByAverage(dataset *models.Dataset) []*models.MemberStats {
	members := make([]*models.MemberStats, 0, len(dataset.Members))
	for _, stats := range dataset.Members {
		members = append(members, stats)
	}
	sort.Slice(members, func(i, j int) bool {
		if members[i].Average != members[j].Average {
			return members[i].Average > members[j].Average
		}
		return members[i].Name < members[j].Name
	})
	return members
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
