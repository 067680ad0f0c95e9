package events

import (
	"encoding/json"
	"fmt"
)

// Message is one event received from the bus.
type Message struct {
	Topic string
	Data  []byte
}

// Subscriber receives events from the event bus.
type Subscriber interface {
	// Subscribe delivers messages on the returned channel.
	// Call the returned cancel function to unsubscribe and close the channel.
	Subscribe(topic string) (<-chan Message, func(), error)
	Close() error
}

// Decode unmarshals the payload into the event type registered for the
// message's topic.
func (m Message) Decode() (any, error) {
	var v any
	switch m.Topic {
	case TopicApplicationCreated:
		v = &ApplicationCreated{}
	case TopicApplicationStatusUpdated:
		v = &ApplicationStatusUpdated{}
	case TopicApplicationWithdrawn:
		v = &ApplicationWithdrawn{}
	case TopicOfferResponded:
		v = &OfferResponded{}
	case TopicCompanyAssigned, TopicCompanyUnassigned:
		v = &CompanyAssignment{}
	case TopicExportCompleted:
		v = &ExportCompleted{}
	default:
		return nil, fmt.Errorf("unknown topic %q", m.Topic)
	}
	if err := json.Unmarshal(m.Data, v); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", m.Topic, err)
	}
	return v, nil
}

// Summary renders a one-line description of a decoded event.
func Summary(topic string, event any) string {
	switch e := event.(type) {
	case *ApplicationCreated:
		if e.Application != nil {
			return fmt.Sprintf("application %s created for job %s", e.Application.ID, e.Application.JobID)
		}
	case *ApplicationStatusUpdated:
		return fmt.Sprintf("application %s: %s -> %s", e.ApplicationID, e.From, e.To)
	case *ApplicationWithdrawn:
		return fmt.Sprintf("application %s withdrawn", e.ApplicationID)
	case *OfferResponded:
		return fmt.Sprintf("offer %s %s", e.OfferID, e.Status)
	case *CompanyAssignment:
		if topic == TopicCompanyUnassigned {
			return fmt.Sprintf("company %s unassigned", e.CompanyID)
		}
		return fmt.Sprintf("company %s assigned", e.CompanyID)
	case *ExportCompleted:
		if e.Export != nil {
			return fmt.Sprintf("export %s: %d rows to %s", e.Export.View, e.Export.Rows, e.Export.Destination)
		}
	}
	return topic
}
