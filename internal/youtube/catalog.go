package youtube

import "strings"

// Curated picks served when the Data API is unconfigured or down. Keyed by
// the course topics the seed catalog ships with.
var fallbackCatalog = map[string][]Video{
	"dsa": {
		{ID: "8hly31xKli0", Title: "Algorithms and Data Structures Tutorial", Channel: "freeCodeCamp.org", URL: "https://www.youtube.com/watch?v=8hly31xKli0"},
		{ID: "RBSGKlAvoiM", Title: "Data Structures Easy to Advanced Course", Channel: "freeCodeCamp.org", URL: "https://www.youtube.com/watch?v=RBSGKlAvoiM"},
		{ID: "09_LlHjoEiY", Title: "Algorithms Course - Graph Theory", Channel: "freeCodeCamp.org", URL: "https://www.youtube.com/watch?v=09_LlHjoEiY"},
	},
	"webdev": {
		{ID: "nu_pCVPKzTk", Title: "HTML Full Course - Build a Website", Channel: "freeCodeCamp.org", URL: "https://www.youtube.com/watch?v=nu_pCVPKzTk"},
		{ID: "1Rs2ND1ryYc", Title: "CSS Tutorial - Zero to Hero", Channel: "freeCodeCamp.org", URL: "https://www.youtube.com/watch?v=1Rs2ND1ryYc"},
		{ID: "PkZNo7MFNFg", Title: "Learn JavaScript - Full Course", Channel: "freeCodeCamp.org", URL: "https://www.youtube.com/watch?v=PkZNo7MFNFg"},
	},
	"aiml": {
		{ID: "i_LwzRVP7bg", Title: "Machine Learning for Everybody", Channel: "freeCodeCamp.org", URL: "https://www.youtube.com/watch?v=i_LwzRVP7bg"},
		{ID: "aircAruvnKk", Title: "But what is a neural network?", Channel: "3Blue1Brown", URL: "https://www.youtube.com/watch?v=aircAruvnKk"},
	},
	"cloud": {
		{ID: "M988_fsOSWo", Title: "Cloud Computing Explained", Channel: "IBM Technology", URL: "https://www.youtube.com/watch?v=M988_fsOSWo"},
		{ID: "ulprqHHWlng", Title: "AWS Certified Cloud Practitioner Course", Channel: "freeCodeCamp.org", URL: "https://www.youtube.com/watch?v=ulprqHHWlng"},
	},
}

var genericPicks = []Video{
	{ID: "rfscVS0vtbw", Title: "Learn Python - Full Course for Beginners", Channel: "freeCodeCamp.org", URL: "https://www.youtube.com/watch?v=rfscVS0vtbw"},
	{ID: "zOjov-2OZ0E", Title: "Introduction to Programming and Computer Science", Channel: "freeCodeCamp.org", URL: "https://www.youtube.com/watch?v=zOjov-2OZ0E"},
}

func catalogFor(topic string, limit int) []Video {
	key := strings.ToLower(strings.TrimSpace(topic))

	picks, ok := fallbackCatalog[key]
	if !ok {
		for known, videos := range fallbackCatalog {
			if strings.Contains(key, known) {
				picks = videos
				ok = true
				break
			}
		}
	}
	if !ok {
		picks = genericPicks
	}

	if limit > 0 && len(picks) > limit {
		picks = picks[:limit]
	}
	return append([]Video(nil), picks...)
}
