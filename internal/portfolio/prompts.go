package portfolio

const systemPrompt = `You write copy for developer portfolio websites.
You only use facts present in the data you are given. Never invent employers,
projects, numbers or technologies. Keep the tone confident and specific,
never boastful. Answer with a single JSON object and nothing else.`

const aboutPrompt = `Write the hero section of a portfolio for this GitHub user.

PROFILE:
%s

CONTRIBUTION STATS:
%s

LANGUAGES:
%s

AUTHOR'S INSTRUCTIONS (tone and focus, may be empty):
%s

Respond with JSON of this exact shape:
{"headline": "<one line, at most 12 words>", "about": "<two or three sentences in first person>"}`

const highlightsPrompt = `Write one short blurb for each of these GitHub repositories, for the
projects section of the owner's portfolio.

REPOSITORIES:
%s

AUTHOR'S INSTRUCTIONS (tone and focus, may be empty):
%s

Each blurb is one sentence saying what the project does and what stands out.
Respond with JSON of this exact shape, one entry per repository, same names:
{"highlights": [{"repo": "<name>", "blurb": "<sentence>"}]}`
