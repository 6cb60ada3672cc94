package synthesis

import "fmt"

const recordsPerTable = 10

const (
	temperature = 0.7
	maxTokens   = 1000
)

func alertsSystemPrompt(region string) string {
	return fmt.Sprintf(`You are a disaster data generator for %s's emergency management system.
Generate exactly 10 emergency alerts as a JSON array with this exact structure for each alert:
{
    "type": "one of [Sandstorm, Heat Wave, Flash Flood, Dust Storm, Strong Winds, Thunderstorm]",
    "severity": "one of [Low, Medium, High]",
    "location": "specific %s location",
    "time": "current time in YYYY-MM-DD HH:MM format",
    "description": "detailed description of the alert"
}
Reply with the JSON array only.`, region, region)
}

func resourcesSystemPrompt(region string) string {
	return fmt.Sprintf(`You are a facility resource manager for %s's emergency management system.
Generate exactly 10 facility reports as a JSON array with this exact structure for each facility:
{
    "facility": "name of %s facility",
    "type": "one of [Primary, Secondary]",
    "lat": "facility latitude in decimal degrees",
    "lon": "facility longitude in decimal degrees",
    "contact": "facility phone number",
    "water": "water supply (1000-10000)",
    "food": "food supply (500-5000)",
    "medical": "medical supplies (0-100)",
    "generators": "backup generators (0-20)",
    "beds": "total beds (100-1000)",
    "current_occupancy": "current occupants (less than beds)",
    "last_updated": "current time in YYYY-MM-DD HH:MM format"
}
Reply with the JSON array only.`, region, region)
}

func updatesSystemPrompt(region string) string {
	return fmt.Sprintf(`You are a social media feed generator for %s's emergency management system.
Generate exactly 10 social updates as a JSON array with this exact structure for each update:
{
    "source_type": "one of [Official, Healthcare, Emergency, Media, Citizen]",
    "username": "Twitter handle with @",
    "message": "update content",
    "location": "%s location",
    "verified": "true or false",
    "trust_score": "0.0 to 1.0",
    "timestamp": "current time in YYYY-MM-DD HH:MM format",
    "engagement": "100 to 5000"
}
Reply with the JSON array only.`, region, region)
}

func userPrompt(noun, scenario string) string {
	return fmt.Sprintf("Generate 10 structured %s for: %s", noun, scenario)
}
