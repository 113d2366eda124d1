package site

// pageTemplate is the single page listing every script. Each button copies
// its script's JSON; the JSON arrives as a Go string and html/template
// emits it as a quoted JS string literal.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
    <head>
        <meta charset="UTF-8">
        <meta name="viewport" content="width=device-width, initial-scale=1.0">
        <title>{{.Title}}</title>
        <style>
            .list {
                display: flex;
                flex-direction: column;
                gap: 1rem;
            }
            button {
                padding: 1rem;
            }
            .intro {
                margin-bottom: 1rem;
            }
        </style>
    </head>
    <body>
        {{- if .Intro}}
        <div class="intro">{{.Intro}}</div>
        {{- end}}
        <div class="list">
            {{range $i, $s := .Scripts}}<button id="script-{{$i}}">{{$s.Name}}</button>{{end}}
        </div>
        <script defer>
            async function copyToClipboard(data) {
                try {
                    await navigator.clipboard.writeText(data);
                    alert("Copied script");
                }
                catch (e) {
                    alert("Unable to copy script: " + e.toString());
                }
            }
            {{range $i, $s := .Scripts}}
            document.querySelector("#script-{{$i}}").addEventListener("click", () => {
                copyToClipboard({{$s.JSON}});
            });
            {{end}}
        </script>
    </body>
</html>
`
