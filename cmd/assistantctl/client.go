package main

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

func newClient(baseURL string) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)
}

func runSend(baseURL, ownerID, name, text string, out io.Writer) error {
	var resp struct {
		Reply string `json:"reply"`
	}
	r, err := newClient(baseURL).R().
		SetBody(map[string]string{"ownerId": ownerID, "senderName": name, "text": text}).
		SetResult(&resp).
		Post("/api/messages")
	if err != nil {
		return err
	}
	if r.StatusCode() != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", r.StatusCode(), r.String())
	}
	fmt.Fprintln(out, resp.Reply)
	return nil
}

func runList(baseURL, ownerID, query string, out io.Writer) error {
	var resp struct {
		Meetings []struct {
			Title           string  `json:"title"`
			StartTime       string  `json:"startTime"`
			DurationMinutes int     `json:"durationMinutes"`
			Location        *string `json:"location,omitempty"`
		} `json:"meetings"`
		Count int `json:"count"`
	}
	req := newClient(baseURL).R().SetResult(&resp)
	if query != "" {
		req.SetQueryParam("query", query)
	}
	r, err := req.Get(fmt.Sprintf("/api/owners/%s/meetings", ownerID))
	if err != nil {
		return err
	}
	if r.StatusCode() != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", r.StatusCode(), r.String())
	}

	if resp.Count == 0 {
		fmt.Fprintln(out, "no meetings")
		return nil
	}
	for _, m := range resp.Meetings {
		line := fmt.Sprintf("%s  %s (%d min)", m.StartTime, m.Title, m.DurationMinutes)
		if m.Location != nil {
			line += "  @ " + *m.Location
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

func runAdd(baseURL, ownerID, title, start string, duration int, location string, out io.Writer) error {
	body := map[string]interface{}{
		"title":           title,
		"startTime":       start,
		"durationMinutes": duration,
	}
	if location != "" {
		body["location"] = location
	}
	r, err := newClient(baseURL).R().
		SetBody(body).
		Post(fmt.Sprintf("/api/owners/%s/meetings", ownerID))
	if err != nil {
		return err
	}
	if r.StatusCode() != http.StatusCreated {
		return fmt.Errorf("unexpected status %d: %s", r.StatusCode(), r.String())
	}
	fmt.Fprintln(out, "created")
	return nil
}
