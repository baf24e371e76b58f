package engine

import (
	"math/rand"
	"strings"

	"github.com/feedsim/feedsim/internal/models"
)

// contentTemplates maps a content-type category to its template pool. The
// {hashtags} placeholder is replaced with the selected hashtag set.
// Categories without a pool (lifestyle, promotional, news, rare_personal)
// fall back to the personal pool.
var contentTemplates = map[string][]string{
	"personal": {
		"Just had an amazing day! {hashtags}",
		"Feeling grateful for all the good things in life {hashtags}",
		"Sometimes it's the little things that matter most {hashtags}",
		"Perfect weather for a walk outside! {hashtags}",
	},
	"food": {
		"This coffee is absolutely perfect ☕ {hashtags}",
		"Trying out a new recipe today! Wish me luck {hashtags}",
		"Nothing beats homemade comfort food {hashtags}",
		"Found this amazing little cafe downtown {hashtags}",
	},
	"tech": {
		"Just discovered this amazing new AI tool that's revolutionizing content creation! The possibilities are endless 🚀 {hashtags}",
		"The future of technology is here and it's incredible! {hashtags}",
		"Working on some exciting new projects. Can't wait to share! {hashtags}",
		"Love how technology keeps making our lives easier {hashtags}",
	},
	"fitness": {
		"💪 Day 30 of my fitness challenge complete! Remember: consistency beats perfection every time. Small steps lead to big changes! {hashtags}",
		"Early morning workout done! Nothing beats that endorphin rush {hashtags}",
		"Setting new personal records every week. The grind continues! {hashtags}",
		"Fitness isn't just about the body, it's about mental strength too {hashtags}",
	},
	"inspirational": {
		"Believe in yourself and amazing things will happen! {hashtags}",
		"Every setback is a setup for a comeback. Keep pushing! {hashtags}",
		"Your only limit is your mind. Dream big, achieve bigger! {hashtags}",
		"Success is not final, failure is not fatal: it is the courage to continue that counts {hashtags}",
	},
	"educational": {
		"Today I learned something fascinating about renewable energy {hashtags}",
		"Here's a quick tip that could save you hours of work {hashtags}",
		"Breaking down complex topics into simple, actionable insights {hashtags}",
		"Knowledge shared is knowledge multiplied {hashtags}",
	},
}

var imageURLs = []string{
	"https://images.unsplash.com/photo-1501339847302-ac426a4a7cbb?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300",
	"https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300",
	"https://images.unsplash.com/photo-1498050108023-c5249f4df085?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300",
	"https://images.unsplash.com/photo-1571019614242-c5c5dee9f50b?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300",
}

const imageAttachProbability = 0.3

// GeneratedContent is the output of one content generation pass.
type GeneratedContent struct {
	Content  string
	ImageURL string
	Hashtags []string
}

// ContentGenerator produces personality-driven post bodies from fixed
// template pools. It never fails: unrecognized personalities use the casual
// archetype and unknown content types use the personal template pool.
type ContentGenerator struct {
	rng *rand.Rand
}

// NewContentGenerator creates a generator backed by the given PRNG.
func NewContentGenerator(rng *rand.Rand) *ContentGenerator {
	return &ContentGenerator{rng: rng}
}

// Generate builds a post body for the given personality: a uniformly chosen
// template from a uniformly chosen content category, 2-4 hashtags drawn
// without replacement from the archetype pool, and an image URL attached
// with probability 0.3.
func (g *ContentGenerator) Generate(personality models.Personality) GeneratedContent {
	profile := models.ProfileFor(personality)

	contentType := profile.ContentTypes[g.rng.Intn(len(profile.ContentTypes))]
	templates, ok := contentTemplates[contentType]
	if !ok {
		templates = contentTemplates["personal"]
	}
	template := templates[g.rng.Intn(len(templates))]

	hashtags := g.pickHashtags(profile.Hashtags, 2, 4)
	tagged := make([]string, len(hashtags))
	for i, tag := range hashtags {
		tagged[i] = "#" + tag
	}
	content := strings.Replace(template, "{hashtags}", strings.Join(tagged, " "), 1)

	var imageURL string
	if g.rng.Float64() < imageAttachProbability {
		imageURL = imageURLs[g.rng.Intn(len(imageURLs))]
	}

	return GeneratedContent{
		Content:  content,
		ImageURL: imageURL,
		Hashtags: hashtags,
	}
}

// pickHashtags draws a uniform count in [min,max] of distinct tags from the
// pool, capped at the pool size.
func (g *ContentGenerator) pickHashtags(pool []string, min, max int) []string {
	count := min + g.rng.Intn(max-min+1)
	if count > len(pool) {
		count = len(pool)
	}

	indexes := g.rng.Perm(len(pool))[:count]
	tags := make([]string, count)
	for i, idx := range indexes {
		tags[i] = pool[idx]
	}
	return tags
}
