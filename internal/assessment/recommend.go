package assessment

// Screening-level advice shown alongside a scored result. These strings are
// deliberately generic; anything medication-specific belongs to the composed
// report where the safety redactor applies.

var baseRecommendations = []string{
	"This assessment is for screening purposes only and does not constitute a medical diagnosis.",
	"Please consult with a qualified mental health professional for proper evaluation.",
}

var phq9Recommendations = map[string][]string{
	"severe": {
		"Your responses suggest severe depression that requires immediate professional attention.",
		"Consider contacting a mental health crisis line if you have thoughts of self-harm.",
		"Seek evaluation for psychotherapy with a qualified professional.",
		"Consider cognitive-behavioral therapy (CBT) or interpersonal therapy (IPT).",
	},
	"moderately_severe": {
		"Your responses indicate moderately severe depression that would benefit from treatment.",
		"Consider scheduling an appointment with a mental health professional.",
		"Maintain social connections and engage in pleasant activities when possible.",
	},
	"moderate": {
		"Your responses suggest moderate depression that could benefit from intervention.",
		"Consider counseling or therapy to address your symptoms.",
		"Regular exercise, good sleep hygiene, and stress management may help.",
		"Monitor your symptoms and seek help if they worsen.",
	},
	"mild": {
		"Your responses indicate mild depression symptoms.",
		"Consider lifestyle changes such as regular exercise and stress reduction.",
		"Monitor your mood and seek professional help if symptoms persist or worsen.",
	},
}

var gad7Recommendations = map[string][]string{
	"severe": {
		"Your responses suggest severe anxiety that would benefit from professional treatment.",
		"Consider cognitive-behavioral therapy (CBT) specifically for anxiety disorders.",
		"Practice relaxation techniques such as deep breathing and mindfulness.",
	},
	"moderate": {
		"Your responses indicate moderate anxiety that could benefit from intervention.",
		"Consider speaking with a counselor about anxiety management strategies.",
		"Regular exercise, adequate sleep, and stress reduction techniques may help.",
		"Limit caffeine and alcohol intake as they can worsen anxiety.",
	},
	"mild": {
		"Your responses show mild anxiety symptoms.",
		"Practice stress management and relaxation techniques.",
		"Regular exercise and good sleep hygiene can help reduce anxiety.",
	},
}

var whiteleyRecommendations = map[string][]string{
	"severe": {
		"Your responses suggest significant health anxiety that may benefit from professional treatment.",
		"Consider cognitive-behavioral therapy (CBT) specifically for health anxiety.",
		"Mindfulness and relaxation techniques may help manage anxiety symptoms.",
		"Avoid excessive medical consultations or internet health searches.",
	},
	"moderate": {
		"Your responses indicate moderate health anxiety that could benefit from intervention.",
		"Consider speaking with a counselor about your health concerns.",
		"Limit health-related internet searches and focus on reliable medical sources.",
	},
	"mild": {
		"Your responses show mild health anxiety, which is manageable with self-care.",
		"Regular exercise and stress management can help reduce anxiety.",
		"Maintain regular medical check-ups but avoid excessive health monitoring.",
	},
	"minimal": {
		"Your responses indicate minimal health anxiety, which is within normal range.",
		"Continue maintaining healthy lifestyle habits.",
	},
}

// Recommendations returns the boilerplate advice for a scored result.
func Recommendations(result *Result) []string {
	recs := append([]string{}, baseRecommendations...)
	var bySeverity map[string][]string
	switch result.InstrumentID {
	case InstrumentPHQ9:
		bySeverity = phq9Recommendations
	case InstrumentGAD7:
		bySeverity = gad7Recommendations
	case InstrumentWhiteley:
		bySeverity = whiteleyRecommendations
	}
	if bySeverity != nil {
		recs = append(recs, bySeverity[result.Severity]...)
	}
	return recs
}
