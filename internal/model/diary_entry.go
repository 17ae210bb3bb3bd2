package model

// DiaryEntry is a single diary record.
// ID and UploadDate are assigned by the system and never taken from clients.
type DiaryEntry struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Mood       string `json:"mood"`
	Date       Date   `json:"date" swaggertype:"string" example:"2024-05-01"`
	UploadDate Date   `json:"upload_date" swaggertype:"string" example:"2024-06-10"`
}

// DiaryEntryChanges holds the client-settable fields of an update.
// A nil field is left as stored.
type DiaryEntryChanges struct {
	Title   *string
	Content *string
	Mood    *string
	Date    *Date
}

// Apply copies every non-nil change onto e.
func (c DiaryEntryChanges) Apply(e *DiaryEntry) {
	if c.Title != nil {
		e.Title = *c.Title
	}
	if c.Content != nil {
		e.Content = *c.Content
	}
	if c.Mood != nil {
		e.Mood = *c.Mood
	}
	if c.Date != nil {
		e.Date = *c.Date
	}
}
