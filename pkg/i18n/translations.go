package i18n

// translations maps label key → language code → format string.
// Format verbs follow fmt.Sprintf conventions.
//
// Supported languages: en (English), hi (Hindi).
var translations = map[string]map[string]string{

	// ─── Loader status ───────────────────────────────────────────────────────
	"dashboard.status.idle": {
		"en": `Click "Verify Backend" to begin.`,
		"hi": `शुरू करने के लिए "Verify Backend" पर क्लिक करें।`,
	},
	"dashboard.status.loaded": {
		"en": "Successfully connected and loaded!",
		"hi": "सफलतापूर्वक कनेक्ट और लोड हो गया!",
	},
	"dashboard.status.failed": {
		"en": "Failed to connect to backend.",
		"hi": "बैकएंड से कनेक्ट नहीं हो सका।",
	},

	// ─── Loader phases ───────────────────────────────────────────────────────
	"dashboard.phase.0": {
		"en": "Initializing connection...",
		"hi": "कनेक्शन शुरू हो रहा है...",
	},
	"dashboard.phase.1": {
		"en": "Connecting to backend...",
		"hi": "बैकएंड से कनेक्ट हो रहा है...",
	},
	"dashboard.phase.2": {
		"en": "Sending API request to /trips...",
		"hi": "/trips पर API अनुरोध भेजा जा रहा है...",
	},
	"dashboard.phase.3": {
		"en": "Processing data...",
		"hi": "डेटा संसाधित हो रहा है...",
	},
	"dashboard.phase.4": {
		"en": "Rendering trips and chart...",
		"hi": "यात्राएँ और चार्ट दिखाए जा रहे हैं...",
	},

	// ─── Table ───────────────────────────────────────────────────────────────
	// %d = matches, %d = page, %d = total pages, %s = fare ceiling
	"dashboard.table.summary": {
		"en": "%d trips match, page %d of %d (fare ceiling %s)",
		"hi": "%d यात्राएँ मिलीं, पृष्ठ %d / %d (अधिकतम किराया %s)",
	},
	"dashboard.table.empty": {
		"en": "No trips found.",
		"hi": "कोई यात्रा नहीं मिली।",
	},
	"dashboard.table.header": {
		"en": "TRIP\tDATE\tPICKUP\tDROPOFF\tKM\tMIN\tFARE\tVEHICLE\tPAYMENT\tRATING",
		"hi": "यात्रा\tतारीख\tपिकअप\tड्रॉप\tकिमी\tमिनट\tकिराया\tवाहन\tभुगतान\tरेटिंग",
	},

	// ─── Chart ───────────────────────────────────────────────────────────────
	"dashboard.chart.fare": {
		"en": "Fare (INR)",
		"hi": "किराया (INR)",
	},
}
