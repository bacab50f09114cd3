package fallback

const (
	bookingTip  = "💰 **Booking Tips**: Book in advance during peak season (Dec-Mar). Consider location relative to attractions you want to visit."
	foodTip     = "🍜 **Food Tips**: Try local street food for authentic experiences. Peak dining hours are 11:30-13:30 and 17:30-20:00."
	visitingTip = "🎫 **Visiting Tips**: Early morning visits (7-9 AM) offer cooler weather and fewer crowds. Many attractions offer combo tickets."
	activityTip = "⏰ **Activity Tips**: Book tours in advance, especially during peak season. Weather can affect outdoor activities."
)

const ZooTemplate = `🦁 Vietnam Zoos and Wildlife Parks:

**Saigon Zoo and Botanical Gardens** (Ho Chi Minh City)
- One of the oldest zoos in the world (established 1864)
- Over 2,000 animals and 1,800 plant species
- Location: District 1, Ho Chi Minh City
- Hours: 7:00 AM - 6:00 PM daily
- Admission: ~50,000 VND ($2 USD)

**Hanoi Zoo** (Thu Le Park)
- Located in central Hanoi
- Features local and exotic animals
- Family-friendly with playgrounds
- Admission: ~30,000 VND ($1.30 USD)

**Vinpearl Safari** (Phu Quoc)
- Modern safari park with over 3,000 animals
- Drive-through safari experience
- Conservation focus
- Part of Vinpearl resort complex

**Best Time to Visit**: Early morning or late afternoon to avoid heat and see more active animals.`

const MuseumTemplate = `🏛️ Vietnam Museums:

**War Remnants Museum** (Ho Chi Minh City)
- Most visited museum in Vietnam
- Vietnam War history and artifacts
- Admission: 40,000 VND ($1.70 USD)

**Vietnam Museum of Ethnology** (Hanoi)
- 54 ethnic groups of Vietnam
- Traditional houses and cultural displays
- Admission: 40,000 VND ($1.70 USD)

**Imperial City** (Hue)
- UNESCO World Heritage site
- Former royal palace complex
- Admission: 200,000 VND ($8.50 USD)

**Cu Chi Tunnels** (Ho Chi Minh City)
- Underground tunnel network from war
- Half-day tours available
- Admission: 110,000 VND ($4.70 USD)`

const RomanticTemplate = `🌹 Romantic Vietnam Destinations:

**Ha Long Bay**: Luxury cruise with private balcony, sunset views, candlelit dinners on deck.

**Hoi An**: Lantern-lit ancient streets, couples cooking classes, riverside dining.

**Sapa**: Mountain romance with terraced rice fields, cozy lodges, scenic train journeys.

**Da Lat**: "City of Eternal Spring" with flower gardens, lakes, and cool mountain air.

**Best Time**: February-May for perfect weather
**Budget**: $200-500 per couple for mid-range experience`

const FoodTemplate = `🍜 Vietnam Culinary Experiences:

**Hanoi**: Street food tours in Old Quarter, pho ga, egg coffee at hidden cafes.

**Ho Chi Minh City**: Cooking classes, Ben Thanh Market tours, rooftop dining.

**Hoi An**: Traditional cooking classes, cao lau noodles, white rose dumplings.

**Must-Try Dishes**: Pho, banh mi, fresh spring rolls, Vietnamese coffee
**Food Tours**: $20-50 per person
**Cooking Classes**: $30-80 per person`

// genericTemplate takes the query twice.
const genericTemplate = "🇻🇳 Vietnam Travel Information for: \"%s\"\n" +
	"\n" +
	"Vietnam offers incredible diversity from bustling cities to serene landscapes. Popular destinations include:\n" +
	"\n" +
	"**North**: Hanoi (culture), Ha Long Bay (nature), Sapa (mountains)\n" +
	"**Central**: Hue (history), Hoi An (charm), Da Nang (beaches)  \n" +
	"**South**: Ho Chi Minh City (energy), Mekong Delta (rivers)\n" +
	"\n" +
	"**Best Time to Visit**: February-May, September-November\n" +
	"**Visa**: Most nationalities need visa or e-visa\n" +
	"**Currency**: Vietnamese Dong (VND)\n" +
	"**Language**: Vietnamese (English widely spoken in tourist areas)\n" +
	"\n" +
	"For specific recommendations about %s, please provide more details about your interests, budget, or travel dates!"
