// Package queue defines message payloads exchanged over the message broker.
package queue

// LeadQueueName is the durable queue lead events are routed to.
const LeadQueueName = "lead.created"

// LeadCreatedEvent is published when a lead is stored. It carries enough
// for downstream consumers to log or notify sales staff without querying
// the database.
type LeadCreatedEvent struct {
	LeadID           string `json:"lead_id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone,omitempty"`
	ProjectID        string `json:"project_id,omitempty"`
	ProjectTitle     string `json:"project_title,omitempty"`
	PreferredContact string `json:"preferred_contact,omitempty"`
	Source           string `json:"source,omitempty"`
	CreatedAt        string `json:"created_at"`
}
