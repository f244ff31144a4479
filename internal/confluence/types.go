package confluence

// Page represents a Confluence content item from the REST API.
type Page struct {
	ID      string      `json:"id"`
	Type    string      `json:"type"`
	Status  string      `json:"status"`
	Title   string      `json:"title"`
	Space   *Space      `json:"space,omitempty"`
	Version PageVersion `json:"version"`
	Body    PageBody    `json:"body"`
	Links   PageLinks   `json:"_links"`
}

// PageVersion contains version info for a page.
type PageVersion struct {
	Number  int    `json:"number"`
	Message string `json:"message,omitempty"`
}

// PageBody contains the page body in storage representation.
type PageBody struct {
	Storage *StorageBody `json:"storage,omitempty"`
}

// StorageBody wraps the storage-format markup string.
type StorageBody struct {
	Value          string `json:"value"`
	Representation string `json:"representation"`
}

// PageLinks contains the _links object from the API.
type PageLinks struct {
	WebUI string `json:"webui"`
	Base  string `json:"base"`
}

// Space represents a Confluence space (minimal fields).
type Space struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// ContentList wraps the results array from content queries.
type ContentList struct {
	Results []Page `json:"results"`
	Size    int    `json:"size"`
}

// Template represents a content template visible to the account.
type Template struct {
	TemplateID string   `json:"templateId"`
	Name       string   `json:"name"`
	Body       PageBody `json:"body"`
}

// TemplateList wraps the results array from the template endpoint.
type TemplateList struct {
	Results []Template `json:"results"`
}

// CreatePayload is the body for POST /rest/api/content.
type CreatePayload struct {
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Space     SpaceRef   `json:"space"`
	Ancestors []Ancestor `json:"ancestors,omitempty"`
	Body      PageBody   `json:"body"`
}

// SpaceRef identifies a space by key in create payloads.
type SpaceRef struct {
	Key string `json:"key"`
}

// Ancestor identifies a parent page in create payloads.
type Ancestor struct {
	ID string `json:"id"`
}

// UpdatePayload is the body for PUT /rest/api/content/{id}.
type UpdatePayload struct {
	Type    string      `json:"type"`
	Title   string      `json:"title"`
	Version PageVersion `json:"version"`
	Body    PageBody    `json:"body"`
}

// AttachmentList wraps the results array from the attachment endpoint.
type AttachmentList struct {
	Results []Attachment `json:"results"`
}

// Attachment represents an uploaded attachment (minimal fields).
type Attachment struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// StorageValue builds a storage-representation body from markup.
func StorageValue(markup string) PageBody {
	return PageBody{
		Storage: &StorageBody{
			Value:          markup,
			Representation: "storage",
		},
	}
}
