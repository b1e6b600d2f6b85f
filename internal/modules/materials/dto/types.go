package dto

import "time"

type MaterialOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Cost        int    `json:"cost"`
	Kind        string `json:"kind"`
	PDF         string `json:"pdf,omitempty"`
	Module      string `json:"module,omitempty"`
	Owned       bool   `json:"owned"`
	Locked      bool   `json:"locked"`
	Affordable  bool   `json:"affordable"`
}

type CatalogOutput struct {
	Experience int              `json:"experience"`
	Materials  []MaterialOutput `json:"materials"`
}

type OpenInput struct {
	ID             string `json:"id"`
	Page           int    `json:"page"`
	LaunchExternal bool   `json:"launch_external"`
}

type OpenOutput struct {
	Material         MaterialOutput `json:"material"`
	Page             int            `json:"page,omitempty"`
	TotalPages       int            `json:"total_pages,omitempty"`
	Content          string         `json:"content"`
	ExternalTarget   string         `json:"external_target,omitempty"`
	ExternalLaunched bool           `json:"external_launched,omitempty"`
}

type PDFOutput struct {
	Filename    string    `json:"filename"`
	DisplayName string    `json:"displayName"`
	Size        int64     `json:"size"`
	Modified    time.Time `json:"modified"`
}

type ModuleInfoOutput struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color,omitempty"`
	Category    string `json:"category"`
	Enabled     bool   `json:"enabled"`
}

type ModulesInput struct {
	Category    string
	EnabledOnly bool
}

type ModulesOutput struct {
	Categories []string           `json:"categories"`
	Modules    []ModuleInfoOutput `json:"modules"`
}

// ModuleOutput is a module page. Module is nil for slugs known only from materials.
type ModuleOutput struct {
	Slug      string            `json:"slug"`
	Module    *ModuleInfoOutput `json:"module,omitempty"`
	Materials []MaterialOutput  `json:"materials,omitempty"`
	Content   string            `json:"content"`
}

type UnlockInput struct {
	ID string `json:"id"`
}

type UnlockOutput struct {
	Material MaterialOutput `json:"material"`
	Outcomes []string       `json:"outcomes,omitempty"`
}
