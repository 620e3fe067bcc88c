package models

import "encoding/json"

// ImageRef accepts the image field in any of its historical request shapes:
// a plain string, {"src": "..."}, or the double-wrapped {"src": {"src": ...}}
// that older admin clients produced. Everything past the decoder deals in the
// single Src string.
type ImageRef struct {
	Src string
}

func (r *ImageRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.Src = s
		return nil
	}

	var obj struct {
		Src json.RawMessage `json:"src"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if len(obj.Src) == 0 {
		r.Src = ""
		return nil
	}

	var inner ImageRef
	if err := json.Unmarshal(obj.Src, &inner); err != nil {
		return err
	}
	r.Src = inner.Src
	return nil
}

func (r ImageRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(Image{Src: r.Src})
}

// ProjectInput is the request body for creating or updating a project.
// Pointer fields distinguish "absent" from "set to zero": on update, absent
// fields keep their prior values.
type ProjectInput struct {
	Title       string    `json:"title"`
	Year        *int      `json:"year"`
	Description string    `json:"description"`
	Details     *string   `json:"details"`
	Category    *string   `json:"category"`
	Languages   []string  `json:"languages"`
	Image       *ImageRef `json:"image"`
	GithubLink  *string   `json:"githubLink"`
	LiveLink    *string   `json:"liveLink"`
}
