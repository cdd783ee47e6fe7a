package cli

import (
	"fmt"
	"strings"

	"github.com/fusedglass/kiln/internal/model"
)

// View types give the aggregates a stable JSON shape; the model keeps its
// internals unexported.

type kilnView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type stepView struct {
	Ramp       string `json:"ramp"`
	TargetTemp int64  `json:"target_temp"`
	DwellTime  int64  `json:"dwell_time"`
}

type programView struct {
	Kiln        string     `json:"kiln"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Steps       []stepView `json:"steps"`
}

type firingView struct {
	Kiln    string `json:"kiln"`
	Program string `json:"program"`
	Comment string `json:"comment"`
}

type imageView struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Caption string `json:"caption"`
	Size    int    `json:"size_bytes"`
}

type projectView struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Firings     []firingView `json:"firings"`
	Images      []imageView  `json:"images"`
}

func newKilnView(k *model.Kiln) kilnView {
	return kilnView{ID: k.ID, Name: k.Name, Description: k.Description}
}

func newProgramView(p *model.KilnProgram) programView {
	view := programView{
		Kiln:        p.Kiln().Name,
		Name:        p.Sequence().Name,
		Description: p.Sequence().Description,
		Steps:       make([]stepView, 0, p.Len()),
	}
	for _, step := range p.Steps() {
		view.Steps = append(view.Steps, stepView{
			Ramp:       step.Ramp.String(),
			TargetTemp: step.TargetTemp,
			DwellTime:  step.DwellTime,
		})
	}
	return view
}

func newProjectView(p *model.KilnProject) projectView {
	view := projectView{
		ID:          p.Project().ID,
		Name:        p.Project().Name,
		Description: p.Project().Description,
		Firings:     make([]firingView, 0, p.NumFirings()),
		Images:      make([]imageView, 0, p.NumPictures()),
	}
	for _, firing := range p.Firings() {
		view.Firings = append(view.Firings, firingView{
			Kiln:    firing.Program.Kiln().Name,
			Program: firing.Program.Sequence().Name,
			Comment: firing.Comment,
		})
	}
	for _, img := range p.Pictures() {
		view.Images = append(view.Images, imageView{
			ID:      img.ID,
			Name:    img.Name,
			Caption: img.Caption,
			Size:    len(img.Contents),
		})
	}
	return view
}

// renderKiln formats a kiln for text output.
func renderKiln(k *model.Kiln) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Kiln: %s\n", k.Name)
	if k.Description != "" {
		fmt.Fprintf(&b, "  %s\n", k.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderProgram formats a program header and its step table for text output.
func renderProgram(p *model.KilnProgram) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Program: %s (kiln %s)\n", p.Sequence().Name, p.Kiln().Name)
	if p.Sequence().Description != "" {
		fmt.Fprintf(&b, "  %s\n", p.Sequence().Description)
	}
	if p.Len() == 0 {
		b.WriteString("  (no steps)\n")
	}
	for i, step := range p.Steps() {
		fmt.Fprintf(&b, "  %d. ramp %s to %d, hold %d\n",
			i+1, step.Ramp, step.TargetTemp, step.DwellTime)
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderProject formats a project aggregate for text output: header, then
// firings in recorded order, then images.
func renderProject(p *model.KilnProject) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Project: %s\n", p.Project().Name)
	if p.Project().Description != "" {
		fmt.Fprintf(&b, "  %s\n", p.Project().Description)
	}

	fmt.Fprintf(&b, "Firings: %d\n", p.NumFirings())
	for i, firing := range p.Firings() {
		fmt.Fprintf(&b, "  %d. %s / %s", i+1, firing.Program.Kiln().Name, firing.Program.Sequence().Name)
		if firing.Comment != "" {
			fmt.Fprintf(&b, " - %s", firing.Comment)
		}
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "Images: %d\n", p.NumPictures())
	for i, img := range p.Pictures() {
		fmt.Fprintf(&b, "  %d. %s (%d bytes)", i+1, img.Name, len(img.Contents))
		if img.Caption != "" {
			fmt.Fprintf(&b, " - %s", img.Caption)
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}
