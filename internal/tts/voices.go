package tts

// Voice describes one named ElevenLabs voice.
type Voice struct {
	ID     string
	Gender string
	Tone   string
}

// VoiceCatalog maps friendly names to ElevenLabs voice IDs. Some names share
// an ID; the aliases exist so Hinglish and Tanglish hosts can be picked by a
// fitting name.
var VoiceCatalog = map[string]Voice{
	// Female
	"Rachel":    {ID: "21m00Tcm4TlvDq8ikWAM", Gender: "Female", Tone: "Warm & Conversational"},
	"Domi":      {ID: "AZnzlk1XvdvUeBnXmlld", Gender: "Female", Tone: "Strong & Confident"},
	"Bella":     {ID: "EXAVITQu4vr4xnSDxMaL", Gender: "Female", Tone: "Soft & Gentle"},
	"Elli":      {ID: "MF3mGyEYCl7XYWbV9V6O", Gender: "Female", Tone: "Young & Energetic"},
	"Charlotte": {ID: "XB0fDUnXU5powFXDhCwa", Gender: "Female", Tone: "Elegant & Sophisticated"},

	// Male
	"Adam":   {ID: "pNInz6obpgDQGcFmaJgB", Gender: "Male", Tone: "Deep & Authoritative"},
	"Antoni": {ID: "ErXwobaYiN019PkySvjV", Gender: "Male", Tone: "Warm & Friendly"},
	"Josh":   {ID: "TxGEqnHWrfWFTfGW9XjX", Gender: "Male", Tone: "Young & Casual"},
	"Arnold": {ID: "VR6AewLTigWG4xSOukaG", Gender: "Male", Tone: "Strong & Bold"},
	"Sam":    {ID: "yoZ06aMxZJJ28mfd3POQ", Gender: "Male", Tone: "Raspy & Unique"},
	"Daniel": {ID: "onwK4e9ZLuTAKqWW03F9", Gender: "Male", Tone: "Calm & Professional"},
	"Clyde":  {ID: "2EiwWnXFnvU5JabPnv8n", Gender: "Male", Tone: "War Veteran & Gruff"},

	// Indian-accent aliases for Hinglish/Tanglish hosts
	"Priya":   {ID: "jsCqWAovK2LkecY7zXl4", Gender: "Female", Tone: "Warm & Expressive"},
	"Anjali":  {ID: "EXAVITQu4vr4xnSDxMaL", Gender: "Female", Tone: "Soft & Gentle"},
	"Rohan":   {ID: "ErXwobaYiN019PkySvjV", Gender: "Male", Tone: "Warm & Friendly"},
	"Arjun":   {ID: "pNInz6obpgDQGcFmaJgB", Gender: "Male", Tone: "Deep & Authoritative"},
	"Meera":   {ID: "21m00Tcm4TlvDq8ikWAM", Gender: "Female", Tone: "Warm & Conversational"},
	"Karthik": {ID: "TxGEqnHWrfWFTfGW9XjX", Gender: "Male", Tone: "Young & Casual"},
}

// ResolveVoice accepts either a catalog name or a raw ElevenLabs voice ID.
func ResolveVoice(nameOrID string) string {
	if v, ok := VoiceCatalog[nameOrID]; ok {
		return v.ID
	}
	return nameOrID
}
