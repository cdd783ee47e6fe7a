package model

// Project is a tracked glass piece. It owns zero or more firings (program
// executions, each with a comment) and zero or more images.
type Project struct {
	// ID is assigned by the store and immutable once assigned.
	ID int64

	// Name is intended to be unique across all projects.
	Name string

	// Description is free text.
	Description string
}

// NewProject builds a project value.
func NewProject(id int64, name, description string) Project {
	return Project{ID: id, Name: name, Description: description}
}

// ProjectFiring is the stored link between a project and one program
// execution. A project may reuse the same program several times, each link
// carrying its own comment explaining why the firing was performed.
type ProjectFiring struct {
	ID         int64
	ProjectID  int64
	SequenceID int64
	Comment    string
}

// NewProjectFiring builds a firing link value.
func NewProjectFiring(id, projectID, sequenceID int64, comment string) ProjectFiring {
	return ProjectFiring{ID: id, ProjectID: projectID, SequenceID: sequenceID, Comment: comment}
}

// ProjectImage is a picture attached to a project: typically intermediate
// forms and the final result. Contents are an opaque byte blob; reading the
// file from disk is the caller's business.
type ProjectImage struct {
	ID        int64
	ProjectID int64

	// Name is the original filename, kept for display only.
	Name string

	// Caption describes the picture, e.g. "pattern tacked to the blank".
	Caption string

	// Contents is the raw image data, stored byte-for-byte.
	Contents []byte
}

// NewProjectImage builds an image value with empty contents.
func NewProjectImage(id, projectID int64, name, caption string) ProjectImage {
	return ProjectImage{ID: id, ProjectID: projectID, Name: name, Caption: caption}
}

// Firing pairs one program execution with the comment explaining it. Keeping
// the pair in a single record makes the comment/program lockstep structural
// instead of a convention over two parallel lists.
type Firing struct {
	Comment string
	Program KilnProgram
}

// KilnProject is the in-memory aggregate of a project, its ordered firings
// (ascending firing-sequence id as reconstituted), and its ordered images
// (ascending image id).
type KilnProject struct {
	project  Project
	firings  []Firing
	pictures []ProjectImage
}

// NewKilnProject builds an empty project aggregate. A project is built up
// incrementally from firings and pictures as the piece progresses.
func NewKilnProject(project Project) *KilnProject {
	return &KilnProject{project: project}
}

// Project returns the project value.
func (p *KilnProject) Project() Project {
	return p.project
}

// Firings returns a copy of the ordered (comment, program) pairs.
func (p *KilnProject) Firings() []Firing {
	out := make([]Firing, len(p.firings))
	copy(out, p.firings)
	return out
}

// Comments returns the firing comments in firing order. Always the same
// length as Programs.
func (p *KilnProject) Comments() []string {
	out := make([]string, len(p.firings))
	for i, f := range p.firings {
		out[i] = f.Comment
	}
	return out
}

// Programs returns the fired programs in firing order. Always the same
// length as Comments.
func (p *KilnProject) Programs() []KilnProgram {
	out := make([]KilnProgram, len(p.firings))
	for i, f := range p.firings {
		out[i] = f.Program
	}
	return out
}

// Pictures returns a copy of the ordered image list.
func (p *KilnProject) Pictures() []ProjectImage {
	out := make([]ProjectImage, len(p.pictures))
	copy(out, p.pictures)
	return out
}

// NumFirings is the number of firings recorded on the project.
func (p *KilnProject) NumFirings() int {
	return len(p.firings)
}

// NumPictures is the number of images attached to the project.
func (p *KilnProject) NumPictures() int {
	return len(p.pictures)
}

// FiringAt returns the firing at idx. Panics when idx is out of range; use
// the editors for checked access.
func (p *KilnProject) FiringAt(idx int) Firing {
	return p.firings[idx]
}

// PictureAt returns the image at idx. Panics when idx is out of range.
func (p *KilnProject) PictureAt(idx int) ProjectImage {
	return p.pictures[idx]
}

// AddFiring appends a program execution with its comment.
func (p *KilnProject) AddFiring(program KilnProgram, comment string) *KilnProject {
	p.firings = append(p.firings, Firing{Comment: comment, Program: program})
	return p
}

// DeleteFiring removes the firing at idx, shifting later firings left.
// Returns InvalidIndex, leaving the list untouched, when idx >= NumFirings.
func (p *KilnProject) DeleteFiring(idx int) error {
	if idx >= len(p.firings) || idx < 0 {
		return NewInvalidIndex(idx)
	}
	p.firings = append(p.firings[:idx], p.firings[idx+1:]...)
	return nil
}

// InsertFiring inserts a program execution at idx. idx == NumFirings
// appends. Returns InvalidIndex, leaving the list untouched, when
// idx > NumFirings.
func (p *KilnProject) InsertFiring(program KilnProgram, comment string, idx int) error {
	if idx > len(p.firings) || idx < 0 {
		return NewInvalidIndex(idx)
	}
	p.firings = append(p.firings, Firing{})
	copy(p.firings[idx+1:], p.firings[idx:])
	p.firings[idx] = Firing{Comment: comment, Program: program}
	return nil
}

// AddPicture appends an image.
func (p *KilnProject) AddPicture(picture ProjectImage) *KilnProject {
	p.pictures = append(p.pictures, picture)
	return p
}

// DeletePicture removes the image at idx. Returns InvalidIndex, leaving the
// list untouched, when idx >= NumPictures.
func (p *KilnProject) DeletePicture(idx int) error {
	if idx >= len(p.pictures) || idx < 0 {
		return NewInvalidIndex(idx)
	}
	p.pictures = append(p.pictures[:idx], p.pictures[idx+1:]...)
	return nil
}

// InsertPicture inserts an image at idx. idx == NumPictures appends.
// Returns InvalidIndex, leaving the list untouched, when idx > NumPictures.
func (p *KilnProject) InsertPicture(picture ProjectImage, idx int) error {
	if idx > len(p.pictures) || idx < 0 {
		return NewInvalidIndex(idx)
	}
	p.pictures = append(p.pictures, ProjectImage{})
	copy(p.pictures[idx+1:], p.pictures[idx:])
	p.pictures[idx] = picture
	return nil
}
