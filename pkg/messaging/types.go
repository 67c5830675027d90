package messaging

import "time"

type ChangeTopic string

const ContentChangedTopic ChangeTopic = "content_changed"

// ContentChanged tells every replica that the CMS published an edit.
type ContentChanged struct {
	Collection string    `json:"collection,omitempty"`
	Slug       string    `json:"slug,omitempty"`
	Origin     string    `json:"origin,omitempty"`
	At         time.Time `json:"at"`
}

type RabbitConfig struct {
	Url    string
	VHost  string
	Prefix string
}

func (c RabbitConfig) Enabled() bool {
	return c.Url != ""
}
