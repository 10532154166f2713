package analysis

// analysisPromptTemplate instructs the model to return structured insights
// and suggested tasks for a trip. The %s placeholder receives the trip
// context JSON. The response contract is strict JSON so the client can
// unmarshal it directly after stripping a possible markdown fence.
const analysisPromptTemplate = `You are a travel preparation assistant analyzing a planned trip.

## RULES
1. Output ONLY valid JSON matching the schema below - no markdown, no explanations, no preamble
2. Your response must start with { and end with }
3. Only reference destinations, travelers, and dates that appear in the trip data
4. Do not repeat generic advice already covered by standard checklists (insurance, passport, vaccines, bank notice, offline maps)
5. Focus on what is specific to these destinations at these dates: season, local events, regional transport quirks, entry formalities beyond passport/visa basics

## TRIP DATA
%s

## RESPONSE SCHEMA
{
  "insights": [
    {
      "category": "weather|culture|logistics|safety|health",
      "severity": "info|warning|critical",
      "title": "short title",
      "description": "one or two sentences",
      "destination": "destination name from the trip data, or empty if trip-wide"
    }
  ],
  "suggested_tasks": [
    {
      "title": "imperative task title",
      "description": "why it matters for this trip",
      "category": "documentation|health|financial|connectivity|logistics",
      "destination": "destination name from the trip data, or empty if trip-wide",
      "traveler": "traveler name from the trip data, or empty if it applies to everyone",
      "date": "YYYY-MM-DD relevant to the task, or empty",
      "confidence": "low|medium|high"
    }
  ]
}`
