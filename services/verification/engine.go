package verification

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// FaceComparator scores how likely the person on the ID card and the
// submitted face image are the same, 0-100. Implementations may call a real
// recognition model; the default is a placeholder.
type FaceComparator interface {
	Compare(idCardRef, faceRef string) (int, error)
}

// TextExtractor pulls printed text off an ID card image. Implementations may
// run real OCR; the default returns fixed placeholder text.
type TextExtractor interface {
	Extract(idCardRef string) (string, error)
}

// RandomFaceComparator returns a bounded pseudo-random score between 70 and
// 90, standing in for a real face-matching model.
type RandomFaceComparator struct{}

func (RandomFaceComparator) Compare(idCardRef, faceRef string) (int, error) {
	return rand.Intn(21) + 70, nil
}

// StaticTextExtractor returns fixed text, standing in for real OCR.
type StaticTextExtractor struct {
	Text string
}

func (s StaticTextExtractor) Extract(idCardRef string) (string, error) {
	if s.Text == "" {
		return "MIT Computer Science Engineering", nil
	}
	return s.Text, nil
}

// CourseOption is one catalogue entry from the student's college.
type CourseOption struct {
	ID   uint
	Name string
}

// MatchResult carries the engine's analysis of one face-image submission.
type MatchResult struct {
	FaceScore      int
	CollegeMatch   bool
	CourseMatch    bool
	CourseDetected string
	IDCardText     string
}

// Engine combines the pluggable strategies into a single scoring pass. It
// holds no state and never touches the database.
type Engine struct {
	faces FaceComparator
	text  TextExtractor
}

func NewEngine(faces FaceComparator, text TextExtractor) *Engine {
	return &Engine{faces: faces, text: text}
}

// NewDefaultEngine wires the placeholder strategies.
func NewDefaultEngine() *Engine {
	return NewEngine(RandomFaceComparator{}, StaticTextExtractor{})
}

// Score runs face comparison and ID card text analysis against the student's
// declared college and the college's course catalogue.
func (e *Engine) Score(idCardRef, faceRef, collegeName string, courses []CourseOption) (MatchResult, error) {
	faceScore, err := e.faces.Compare(idCardRef, faceRef)
	if err != nil {
		return MatchResult{}, fmt.Errorf("face comparison: %w", err)
	}

	text, err := e.text.Extract(idCardRef)
	if err != nil {
		return MatchResult{}, fmt.Errorf("text extraction: %w", err)
	}

	result := MatchResult{
		FaceScore:  faceScore,
		IDCardText: text,
	}

	result.CollegeMatch = collegeNameMatches(text, collegeName)
	result.CourseDetected = detectCourse(text, courses)
	result.CourseMatch = result.CourseDetected != ""

	return result, nil
}

// collegeNameMatches compares the institution-name guess (first word of the
// extracted text) against the declared college name, case-insensitive,
// substring in either direction.
func collegeNameMatches(text, collegeName string) bool {
	if collegeName == "" {
		return false
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return false
	}
	guess := strings.ToLower(fields[0])
	declared := strings.ToLower(collegeName)
	return strings.Contains(declared, guess) || strings.Contains(guess, declared)
}

// detectCourse finds the first catalogue course that appears in the extracted
// text. A course matches when its full name is contained in the text (either
// direction) or any of its words longer than 3 characters appears in the
// text. First match wins, no ranking.
func detectCourse(text string, courses []CourseOption) string {
	textLower := strings.ToLower(text)
	for _, course := range courses {
		nameLower := strings.ToLower(course.Name)
		if strings.Contains(textLower, nameLower) || strings.Contains(nameLower, textLower) {
			return course.Name
		}
		for _, word := range strings.Fields(nameLower) {
			if len(word) > 3 && strings.Contains(textLower, word) {
				return course.Name
			}
		}
	}
	return ""
}

// CombinedScore weighs the face score at 0.6 and adds 20 points each for a
// college and a course match. The 80/40 cut points in the service depend on
// these exact weights.
func CombinedScore(result MatchResult) int {
	score := float64(result.FaceScore) * 0.6
	if result.CollegeMatch {
		score += 20
	}
	if result.CourseMatch {
		score += 20
	}
	return int(math.Round(score))
}
