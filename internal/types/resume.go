// Package types provides type definitions for structured data used throughout Jobtune.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ResumeProfile is the structured view of a resume produced by the resume parser.
// The JSON names follow the upload API contract consumed by the frontend.
type ResumeProfile struct {
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experience"`
	RawText         string   `json:"resume_text"`
}

// HasSkill reports whether the profile lists the given skill (exact, lowercase form).
func (p *ResumeProfile) HasSkill(skill string) bool {
	for _, s := range p.Skills {
		if s == skill {
			return true
		}
	}
	return false
}
