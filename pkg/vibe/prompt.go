package vibe

import "fmt"

// singleImagePrompt asks for a per-frame classification with the line
// prefixes parseResponse recognizes.
const singleImagePrompt = `Analyze this image and determine if the person in it is moving in an exciting way or "vibing" to music.

Consider the following:
- Body position and posture (dancing, swaying, moving rhythmically)
- Facial expressions (joy, excitement, energy)
- Arm/hand movements (raised, waving, gesturing)
- Overall energy level
- Signs of dancing or rhythmic movement

Respond in this exact format:
VIBING: [YES/NO]
CONFIDENCE: [0-100]
DESCRIPTION: [Brief description of what you observe about the person's movement and energy]`

// temporalPrompt asks for a cross-frame motion analysis over n images.
func temporalPrompt(n int) string {
	return fmt.Sprintf(`Analyze this sequence of %d images captured over time to determine if the person is vibing or dancing to music.

Look for:
1. Changes in body position between frames (movement, dancing)
2. Raised arms, rhythmic gestures, or dance moves
3. Facial expressions showing joy or excitement
4. Progressive movement that suggests dancing or vibing to music
5. Energy and enthusiasm in their poses

Compare the images and identify any movement patterns that indicate the person is:
- Dancing or moving rhythmically
- Showing excitement or energy
- Vibing to music
- Engaging in any celebratory movements

Respond in this format:
VIBING: [YES/NO]
CONFIDENCE: [0-100]
MOVEMENT_DETECTED: [YES/NO]
ENERGY_LEVEL: [LOW/MEDIUM/HIGH]
DESCRIPTION: [Detailed description of observed movements, changes between frames, and overall vibe]`, n)
}
