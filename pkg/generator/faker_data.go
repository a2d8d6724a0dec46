// Copyright 2025 Mockd LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package generator

// =============================================================================
// Faker data: Person
// =============================================================================

// fakerFirstNames contains given names for name and email generation.
var fakerFirstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael", "Linda",
	"David", "Elizabeth", "William", "Barbara", "Richard", "Susan", "Joseph", "Jessica",
	"Thomas", "Sarah", "Charles", "Karen", "Daniel", "Lisa", "Matthew", "Nancy",
	"Anthony", "Betty", "Mark", "Sandra", "Steven", "Ashley", "Andrew", "Kimberly",
	"Kenneth", "Emily", "Kevin", "Donna", "Brian", "Michelle", "Jordan", "Taylor",
}

// fakerLastNames contains family names for name, email and company generation.
var fakerLastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas",
	"Moore", "Jackson", "Martin", "Lee", "Thompson", "White", "Harris", "Sanchez",
	"Clark", "Ramirez", "Lewis", "Robinson", "Walker", "Young", "Allen", "King",
	"Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores", "Green", "Adams",
}

// =============================================================================
// Faker data: Internet
// =============================================================================

// fakerFreeEmailDomains contains mailbox providers for standalone emails.
var fakerFreeEmailDomains = []string{
	"gmail.com", "yahoo.com", "hotmail.com", "outlook.com", "proton.me", "icloud.com",
}

// fakerDomainWords contains words combined into generated domain names.
var fakerDomainWords = []string{
	"acme", "bright", "cloud", "delta", "ember", "frontier", "granite", "harbor",
	"insight", "juniper", "keystone", "lumen", "meadow", "nimbus", "orbit", "pioneer",
	"quartz", "ridge", "summit", "tandem", "union", "vertex", "willow", "zenith",
}

// fakerDomainSuffixes contains top-level domains for generated domain names.
var fakerDomainSuffixes = []string{
	"com", "net", "org", "io", "info", "biz", "co",
}

// fakerAvatarBaseURL is the avatar image host; a numeric user id is appended.
const fakerAvatarBaseURL = "https://avatars.githubusercontent.com/u/"

// =============================================================================
// Faker data: Phone
// =============================================================================

// fakerPhoneFormats contains US-style phone layouts; each # becomes a digit.
var fakerPhoneFormats = []string{
	"###-###-####",
	"(###) ###-####",
	"1-###-###-####",
	"###.###.####",
	"+1 ###-###-####",
	"###-###-#### x###",
}

// =============================================================================
// Faker data: Location
// =============================================================================

// fakerStreetNames contains street name stems.
var fakerStreetNames = []string{
	"Main", "Oak", "Pine", "Maple", "Cedar", "Elm", "Washington", "Lake",
	"Hill", "Park", "Sunset", "Highland", "Church", "Mill", "River", "Spring",
}

// fakerStreetSuffixes contains street type suffixes.
var fakerStreetSuffixes = []string{
	"Street", "Avenue", "Boulevard", "Drive", "Lane", "Road", "Way", "Court", "Place", "Terrace",
}

// fakerSecondaryAddresses contains unit designators; # becomes a digit.
var fakerSecondaryAddresses = []string{
	"Apt. ###", "Suite ###",
}

// =============================================================================
// Faker data: Company
// =============================================================================

// fakerCompanySuffixes contains legal-entity suffixes.
var fakerCompanySuffixes = []string{
	"Inc", "LLC", "Group", "and Sons", "Ltd", "Corp",
}

// =============================================================================
// Faker data: Lorem
// =============================================================================

// fakerLoremWords contains the lorem ipsum vocabulary for sentences.
var fakerLoremWords = []string{
	"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing", "elit",
	"sed", "do", "eiusmod", "tempor", "incididunt", "ut", "labore", "et",
	"dolore", "magna", "aliqua", "enim", "ad", "minim", "veniam", "quis",
	"nostrud", "exercitation", "ullamco", "laboris", "nisi", "aliquip", "ex", "ea",
	"commodo", "consequat", "duis", "aute", "irure", "in", "reprehenderit", "voluptate",
	"velit", "esse", "cillum", "fugiat", "nulla", "pariatur", "excepteur", "sint",
}

// Sentence length bounds, in words.
const (
	fakerSentenceMinWords = 3
	fakerSentenceMaxWords = 10
)
