package constant

const (
	// AnalysisErrorTitle is the insight shown when the model answer is unusable.
	AnalysisErrorTitle = "Erreur d'analyse"

	AnalysisSystemPromptV1 = `Tu es un consultant en stratégie qui anime un atelier AFOM (Acquis, Faiblesses, Opportunités, Menaces).
Tu reçois les post-it des participants, classés par quadrant.
Tu réponds uniquement en JSON valide, sans texte autour, sans balises Markdown.`

	// AnalysisSummaryPromptV1 takes the project name, the theme and the formatted notes.
	AnalysisSummaryPromptV1 = `Projet : %s
Thème : %s

Post-it de l'atelier :
%s

Produis exactement 3 enseignements et 3 recommandations.
Chaque recommandation a une priorité parmi URGENT, HIGH, MEDIUM, LOW.

Format attendu :
{
  "insights": [{"title": "...", "content": "..."}],
  "recommendations": [{"title": "...", "content": "...", "priority": "HIGH"}]
}`

	// CentralProblemPromptV1 takes the project name, the theme and the formatted notes.
	CentralProblemPromptV1 = `Projet : %s
Thème : %s

Post-it de l'atelier :
%s

Formule la problématique centrale qui ressort de ces post-it, en une phrase, puis justifie-la brièvement.

Format attendu :
{"problem": "...", "rationale": "..."}`

	// AnalysisNoteLineFormat renders one note as "- [bucket] author : content".
	AnalysisNoteLineFormat = "- [%s] %s : %s"
)
