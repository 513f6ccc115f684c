package registry

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/malecare/trialbot/domain"
)

const studyLinkBase = "https://clinicaltrials.gov/study/"

// studiesResponse keeps each study raw so one malformed record can be
// skipped without failing the whole search.
type studiesResponse struct {
	Studies []json.RawMessage `json:"studies"`
}

type study struct {
	ProtocolSection struct {
		Identification struct {
			NCTID         string `json:"nctId"`
			BriefTitle    string `json:"briefTitle"`
			OfficialTitle string `json:"officialTitle"`
		} `json:"identificationModule"`
		Status struct {
			OverallStatus string `json:"overallStatus"`
		} `json:"statusModule"`
		Design struct {
			Phases []string `json:"phases"`
		} `json:"designModule"`
		ContactsLocations struct {
			Locations []struct {
				Facility string `json:"facility"`
				City     string `json:"city"`
				State    string `json:"state"`
			} `json:"locations"`
		} `json:"contactsLocationsModule"`
		SponsorCollaborators struct {
			LeadSponsor struct {
				Name string `json:"name"`
			} `json:"leadSponsor"`
		} `json:"sponsorCollaboratorsModule"`
	} `json:"protocolSection"`
}

// parseStudies converts raw study records into Trials. Records that fail to
// decode or carry no NCT ID are skipped, and the result is capped at the
// search page size.
func parseStudies(data studiesResponse, requestedLocation string) []domain.Trial {
	trials := make([]domain.Trial, 0, len(data.Studies))
	for _, raw := range data.Studies {
		var s study
		if err := json.Unmarshal(raw, &s); err != nil {
			log.Printf("WARN: skipping malformed study record: %v", err)
			continue
		}

		p := s.ProtocolSection
		if p.Identification.NCTID == "" {
			// Without an identifier there is nothing to link to.
			continue
		}

		title := p.Identification.BriefTitle
		if title == "" {
			title = p.Identification.OfficialTitle
		}
		if title == "" {
			title = "Untitled Study"
		}

		phase := "Not Specified"
		if len(p.Design.Phases) > 0 {
			phase = formatPhase(p.Design.Phases[0])
		}

		location := requestedLocation
		if location == "" {
			location = "United States"
		}
		facility := "Multiple Sites"
		if len(p.ContactsLocations.Locations) > 0 {
			first := p.ContactsLocations.Locations[0]
			if first.Facility != "" {
				facility = first.Facility
			}
			if first.City != "" && first.State != "" {
				location = first.City + ", " + first.State
			}
		}

		trials = append(trials, domain.Trial{
			NCTID:    p.Identification.NCTID,
			Title:    title,
			Phase:    phase,
			Status:   formatStatus(p.Status.OverallStatus),
			Location: location,
			Facility: facility,
			Sponsor:  p.SponsorCollaborators.LeadSponsor.Name,
			Link:     studyLinkBase + p.Identification.NCTID,
		})
		if len(trials) == pageSize {
			break
		}
	}
	return trials
}

// formatPhase turns the registry's "PHASE2" into "Phase 2".
func formatPhase(phase string) string {
	return strings.Replace(phase, "PHASE", "Phase ", 1)
}

// formatStatus turns the registry's "ACTIVE_NOT_RECRUITING" into
// "Active Not Recruiting".
func formatStatus(status string) string {
	if status == "" {
		return "Unknown"
	}
	words := strings.Split(strings.ToLower(status), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
