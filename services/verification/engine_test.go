package verification

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedFace struct {
	score int
	err   error
}

func (f fixedFace) Compare(idCardRef, faceRef string) (int, error) {
	return f.score, f.err
}

type fixedText struct {
	text string
	err  error
}

func (f fixedText) Extract(idCardRef string) (string, error) {
	return f.text, f.err
}

func TestScoreCollegeMatch(t *testing.T) {
	engine := NewEngine(fixedFace{score: 80}, fixedText{text: "MIT Computer Science Engineering"})

	result, err := engine.Score("id.jpg", "face.jpg", "MIT", nil)
	require.NoError(t, err)
	assert.True(t, result.CollegeMatch)

	// Substring works in either direction.
	result, err = engine.Score("id.jpg", "face.jpg", "MIT School of Engineering", nil)
	require.NoError(t, err)
	assert.True(t, result.CollegeMatch)

	result, err = engine.Score("id.jpg", "face.jpg", "Stanford", nil)
	require.NoError(t, err)
	assert.False(t, result.CollegeMatch)

	result, err = engine.Score("id.jpg", "face.jpg", "", nil)
	require.NoError(t, err)
	assert.False(t, result.CollegeMatch)
}

func TestScoreCourseDetection(t *testing.T) {
	engine := NewEngine(fixedFace{score: 80}, fixedText{text: "MIT Computer Science Engineering"})
	courses := []CourseOption{
		{ID: 1, Name: "Mechanical Engineering"},
		{ID: 2, Name: "Computer Science"},
	}

	result, err := engine.Score("id.jpg", "face.jpg", "MIT", courses)
	require.NoError(t, err)
	assert.True(t, result.CourseMatch)
	// First match wins: "Engineering" is a >3 char word of the first course.
	assert.Equal(t, "Mechanical Engineering", result.CourseDetected)

	result, err = engine.Score("id.jpg", "face.jpg", "MIT", []CourseOption{{ID: 3, Name: "Law"}})
	require.NoError(t, err)
	assert.False(t, result.CourseMatch)
	assert.Empty(t, result.CourseDetected)

	// Words of 3 characters or fewer never match on their own, even when
	// they appear in the extracted text.
	result, err = engine.Score("id.jpg", "face.jpg", "MIT", []CourseOption{{ID: 4, Name: "MIT Prep"}})
	require.NoError(t, err)
	assert.False(t, result.CourseMatch)

	// No catalogue means no course match.
	result, err = engine.Score("id.jpg", "face.jpg", "MIT", nil)
	require.NoError(t, err)
	assert.False(t, result.CourseMatch)
}

func TestCombinedScore(t *testing.T) {
	cases := []struct {
		name     string
		face     int
		college  bool
		course   bool
		expected int
	}{
		{"all matches", 90, true, true, 94},
		{"no matches", 50, false, false, 30},
		{"college only", 70, true, false, 62},
		{"rounds up", 33, false, false, 20},   // 19.8
		{"rounds down", 32, false, false, 19}, // 19.2
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CombinedScore(MatchResult{FaceScore: tc.face, CollegeMatch: tc.college, CourseMatch: tc.course})
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestScorePropagatesStrategyErrors(t *testing.T) {
	engine := NewEngine(fixedFace{err: errors.New("model offline")}, fixedText{text: "MIT"})
	_, err := engine.Score("id.jpg", "face.jpg", "MIT", nil)
	assert.Error(t, err)

	engine = NewEngine(fixedFace{score: 80}, fixedText{err: errors.New("ocr offline")})
	_, err = engine.Score("id.jpg", "face.jpg", "MIT", nil)
	assert.Error(t, err)
}

func TestRandomFaceComparatorBounds(t *testing.T) {
	comparator := RandomFaceComparator{}
	for i := 0; i < 200; i++ {
		score, err := comparator.Compare("id.jpg", "face.jpg")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, score, 70)
		assert.LessOrEqual(t, score, 90)
	}
}
