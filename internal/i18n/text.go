package i18n

// Text is a per-language string table for a single piece of content.
type Text map[Language]string

// Get returns the text for lang, falling back to English and then to any
// non-empty translation.
func (t Text) Get(lang Language) string {
	if s := t[lang]; s != "" {
		return s
	}
	if s := t[English]; s != "" {
		return s
	}
	for _, o := range options {
		if s := t[o.Code]; s != "" {
			return s
		}
	}
	return ""
}

// Key identifies a UI string.
type Key string

const (
	MainTitle           Key = "mainTitle"
	WelcomeMessage      Key = "welcomeMessage"
	StartChat           Key = "startChat"
	TakeQuiz            Key = "takeQuiz"
	AIHistorianTitle    Key = "aiHistorianTitle"
	ChatPlaceholder     Key = "chatPlaceholder"
	InstructionsTitle   Key = "instructionsTitle"
	Instruction1        Key = "instruction1"
	Instruction2        Key = "instruction2"
	Instruction3        Key = "instruction3"
	Instruction4        Key = "instruction4"
	Instruction5        Key = "instruction5"
	ContinueToQuiz      Key = "continueToQuiz"
	QuizTitle           Key = "quizTitle"
	ResultsTitle        Key = "resultsTitle"
	YourScore           Key = "yourScore"
	PassMessage         Key = "passMessage"
	FailMessage         Key = "failMessage"
	EnterFullName       Key = "enterFullName"
	GenerateCertificate Key = "generateCertificate"
	DownloadPDF         Key = "downloadPDF"
	Restart             Key = "restart"
	ReviewAnswers       Key = "reviewAnswers"
	Explanation         Key = "explanation"
	LanguageLabel       Key = "language"
	Eras                Key = "eras"
	SearchEras          Key = "searchEras"
	NoErasMatch         Key = "noErasMatch"
	Thinking            Key = "thinking"
	QuestionProgress    Key = "questionProgress"
	TimeRemaining       Key = "timeRemaining"
	TimeUp              Key = "timeUp"
	Answered            Key = "answered"
	FinishQuiz          Key = "finishQuiz"
	YourAnswer          Key = "yourAnswer"
	CorrectAnswer       Key = "correctAnswer"
	NotAnswered         Key = "notAnswered"
	CertificateFor      Key = "certificateFor"
	CertificateSaved    Key = "certificateSaved"
	CertificateFailed   Key = "certificateFailed"
	Downloading         Key = "downloading"
	ChangeName          Key = "changeName"
	NoQuestions         Key = "noQuestions"
)

// ui holds the interface strings. English is complete; other languages are
// partial and fall back per key.
var ui = map[Key]Text{
	MainTitle:           {English: "Journey Through Time", French: "Voyage à travers le temps", Kinyarwanda: "Urugendo mu Mateka"},
	WelcomeMessage:      {English: "Pick an era to explore, or ask Chronos anything about world history.", French: "Choisissez une époque à explorer, ou posez n'importe quelle question à Chronos."},
	StartChat:           {English: "Start a conversation", French: "Commencer une conversation"},
	TakeQuiz:            {English: "Take the quiz", French: "Passer le quiz"},
	AIHistorianTitle:    {English: "Chronos, AI Historian", French: "Chronos, historien IA"},
	ChatPlaceholder:     {English: "Ask about any moment in history...", French: "Posez une question sur l'histoire..."},
	InstructionsTitle:   {English: "Before you begin", French: "Avant de commencer"},
	Instruction1:        {English: "Read each question carefully before choosing an answer.", French: "Lisez attentivement chaque question avant de répondre."},
	Instruction2:        {English: "Each question has exactly one correct option.", French: "Chaque question a exactement une bonne réponse."},
	Instruction3:        {English: "The quiz is timed; unanswered questions count as wrong when time runs out.", French: "Le quiz est chronométré ; les questions sans réponse comptent comme fausses."},
	Instruction4:        {English: "You need a score of 60% or more to pass.", French: "Il faut au moins 60 % pour réussir."},
	Instruction5:        {English: "Pass to generate and download your certificate.", French: "Réussissez pour obtenir votre certificat."},
	ContinueToQuiz:      {English: "Continue to quiz", French: "Continuer vers le quiz"},
	QuizTitle:           {English: "History Quiz", French: "Quiz d'histoire"},
	ResultsTitle:        {English: "Quiz Results", French: "Résultats du quiz"},
	YourScore:           {English: "Your score", French: "Votre score"},
	PassMessage:         {English: "Congratulations, you passed!", French: "Félicitations, vous avez réussi !"},
	FailMessage:         {English: "You did not pass this time. Try again!", French: "Vous n'avez pas réussi cette fois. Réessayez !"},
	EnterFullName:       {English: "Enter your full name for the certificate", French: "Entrez votre nom complet pour le certificat"},
	GenerateCertificate: {English: "Generate certificate", French: "Générer le certificat"},
	DownloadPDF:         {English: "Download PDF", French: "Télécharger le PDF"},
	Restart:             {English: "Restart quiz", French: "Recommencer le quiz"},
	ReviewAnswers:       {English: "Review your answers", French: "Revoir vos réponses"},
	Explanation:         {English: "Explanation", French: "Explication"},
	LanguageLabel:       {English: "Language", French: "Langue", Kinyarwanda: "Ururimi"},
	Eras:                {English: "Eras", French: "Époques"},
	SearchEras:          {English: "Type to filter eras...", French: "Tapez pour filtrer les époques..."},
	NoErasMatch:         {English: "No era matches your search.", French: "Aucune époque ne correspond."},
	Thinking:            {English: "Chronos is consulting the archives...", French: "Chronos consulte les archives..."},
	QuestionProgress:    {English: "Question %d of %d", French: "Question %d sur %d"},
	TimeRemaining:       {English: "Time remaining", French: "Temps restant"},
	TimeUp:              {English: "Time is up!", French: "Le temps est écoulé !"},
	Answered:            {English: "%d of %d answered", French: "%d sur %d répondues"},
	FinishQuiz:          {English: "Finish quiz", French: "Terminer le quiz"},
	YourAnswer:          {English: "Your answer", French: "Votre réponse"},
	CorrectAnswer:       {English: "Correct answer", French: "Bonne réponse"},
	NotAnswered:         {English: "Not answered", French: "Sans réponse"},
	CertificateFor:      {English: "Certificate holder", French: "Titulaire du certificat"},
	CertificateSaved:    {English: "Certificate saved to %s", French: "Certificat enregistré dans %s"},
	CertificateFailed:   {English: "Could not save the certificate: %s", French: "Impossible d'enregistrer le certificat : %s"},
	Downloading:         {English: "Preparing your certificate...", French: "Préparation du certificat..."},
	ChangeName:          {English: "Change name", French: "Changer le nom"},
	NoQuestions:         {English: "No quiz questions are available yet.", French: "Aucune question de quiz n'est encore disponible."},
}

// T returns the UI string for key in lang.
func T(lang Language, key Key) string {
	if t, ok := ui[key]; ok {
		return t.Get(lang)
	}
	return string(key)
}
