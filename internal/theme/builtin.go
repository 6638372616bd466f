package theme

import "text/template"

// The built-in preambles define the macro set the LaTeX body renderer emits:
// \cvheader{name}{headline}, \cvcontacts{...}, \cvsection{title},
// \cvevent{title}{subtitle}{dates}{location}, \cvline{...}, \cvbullet{...}
// and the cvhighlights list environment.

const classicPreamble = `\documentclass[{{.FontSize}},{{.PageSize}}]{article}
\usepackage[margin=2cm]{geometry}
\usepackage{xcolor}
\usepackage[hidelinks]{hyperref}
\usepackage{enumitem}
\usepackage{titlesec}
\definecolor{accent}{HTML}{{"{"}}{{.AccentHex}}{{"}"}}
{{if .DisablePageNumbers}}\pagestyle{empty}
{{end}}\newcommand{\cvheader}[2]{\begin{center}{\Huge #1}\\[2pt]{\large #2}\end{center}}
\newcommand{\cvcontacts}[1]{\begin{center}#1\end{center}}
\newcommand{\cvsection}[1]{\vspace{6pt}{\color{accent}\Large\bfseries #1}\\[-8pt]{\color{accent}\rule{\textwidth}{0.9pt}}}
\newcommand{\cvevent}[4]{\par\noindent\textbf{#1}\hfill #3\\ #2\hfill #4\par}
\newcommand{\cvline}[1]{\par\noindent #1\par}
\newcommand{\cvbullet}[1]{\par\noindent\textbullet\ #1\par}
\newenvironment{cvhighlights}{\begin{itemize}[leftmargin=*,nosep]}{\end{itemize}}
{{if .ShowLastUpdated}}\usepackage{fancyhdr}\pagestyle{fancy}\fancyhf{}\rfoot{\footnotesize Last updated: \today}
{{end}}`

const engineeringPreamble = `\documentclass[{{.FontSize}},{{.PageSize}}]{article}
\usepackage[margin=1.6cm]{geometry}
\usepackage{xcolor}
\usepackage[hidelinks]{hyperref}
\usepackage{enumitem}
\definecolor{accent}{HTML}{{"{"}}{{.AccentHex}}{{"}"}}
{{if .DisablePageNumbers}}\pagestyle{empty}
{{end}}\newcommand{\cvheader}[2]{\noindent{\huge\bfseries #1}\quad{\large #2}\par\vspace{4pt}}
\newcommand{\cvcontacts}[1]{\noindent #1\par\vspace{2pt}\hrule}
\newcommand{\cvsection}[1]{\vspace{8pt}\noindent{\large\scshape #1}\par\vspace{-4pt}\hrule\vspace{2pt}}
\newcommand{\cvevent}[4]{\par\noindent\textbf{#1} \textbar{} #2\hfill #3, #4\par}
\newcommand{\cvline}[1]{\par\noindent #1\par}
\newcommand{\cvbullet}[1]{\par\noindent -- #1\par}
\newenvironment{cvhighlights}{\begin{itemize}[leftmargin=1.2em,nosep]}{\end{itemize}}
`

const modernPreamble = `\documentclass[{{.FontSize}},{{.PageSize}}]{article}
\usepackage[margin=1.8cm]{geometry}
\usepackage{xcolor}
\usepackage[hidelinks]{hyperref}
\usepackage{enumitem}
\usepackage{helvet}
\renewcommand{\familydefault}{\sfdefault}
\definecolor{accent}{HTML}{{"{"}}{{.AccentHex}}{{"}"}}
{{if .DisablePageNumbers}}\pagestyle{empty}
{{end}}\newcommand{\cvheader}[2]{\noindent{\color{accent}\Huge\bfseries #1}\par\noindent{\large #2}\par}
\newcommand{\cvcontacts}[1]{\noindent\small #1\par}
\newcommand{\cvsection}[1]{\vspace{10pt}\noindent\colorbox{accent}{\color{white}\large\bfseries\ #1\ }\par\vspace{4pt}}
\newcommand{\cvevent}[4]{\par\noindent\textbf{#1}\hfill{\color{accent}#3}\\ #2\hfill #4\par}
\newcommand{\cvline}[1]{\par\noindent #1\par}
\newcommand{\cvbullet}[1]{\par\noindent\textbullet\ #1\par}
\newenvironment{cvhighlights}{\begin{itemize}[leftmargin=*,nosep]}{\end{itemize}}
`

const sharedCSS = `body { font-family: Georgia, serif; max-width: 46rem; margin: 2rem auto; padding: 0 1rem; color: #222; }
header h1 { margin-bottom: 0.1rem; }
.headline { font-size: 1.1rem; color: #444; margin-top: 0; }
.contacts { font-size: 0.9rem; }
h2 { color: ACCENT; border-bottom: 1px solid ACCENT; padding-bottom: 2px; }
.entry h3 { margin-bottom: 0.1rem; }
.meta { color: #555; font-size: 0.9rem; margin-top: 0; }
ul { margin-top: 0.2rem; }
`

const modernCSS = `body { font-family: Helvetica, Arial, sans-serif; max-width: 46rem; margin: 2rem auto; padding: 0 1rem; color: #1a1a1a; }
header h1 { color: ACCENT; margin-bottom: 0.1rem; }
.headline { font-size: 1.1rem; margin-top: 0; }
.contacts { font-size: 0.85rem; }
h2 { background: ACCENT; color: #fff; padding: 2px 8px; }
.entry h3 { margin-bottom: 0.1rem; }
.meta { color: ACCENT; font-size: 0.9rem; margin-top: 0; }
ul { margin-top: 0.2rem; }
`

func builtin(name, preamble, css string) Constructor {
	tmpl := template.Must(template.New(name).Option("missingkey=error").Parse(preamble))
	return func() *Theme {
		return &Theme{name: name, opts: defaultOptions(), preamble: tmpl, css: css}
	}
}

func init() {
	Register("classic", builtin("classic", classicPreamble, sharedCSS))
	Register("engineering", builtin("engineering", engineeringPreamble, sharedCSS))
	Register("modern", builtin("modern", modernPreamble, modernCSS))
}
